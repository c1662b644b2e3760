package contract

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/artgallery/base/abi"
	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/artwork"
	"github.com/x-xyz/artgallery/domain/mocks"
	"github.com/x-xyz/artgallery/service/chain"
)

const contractAddr = domain.Address("0x5FbDB2315678afecb367f032d93F642f64180aa3")

var mockCtx = bCtx.Background()

type artworkSuite struct {
	suite.Suite
	eth     *mocks.EthClientRepo
	subject artwork.ContractRepo
}

func TestArtwork(t *testing.T) {
	suite.Run(t, new(artworkSuite))
}

func (s *artworkSuite) SetupTest() {
	s.eth = &mocks.EthClientRepo{}
	s.subject = NewArtwork(chain.NewClientWithRepo(s.eth, &chain.ClientCfg{}), contractAddr)
}

// expect answers calls to method with the abi encoded outputs
func (s *artworkSuite) expect(method string, outputs ...interface{}) {
	selector := abi.ArtworkABI.Methods[method].ID
	encoded, err := abi.ArtworkABI.Methods[method].Outputs.Pack(outputs...)
	s.Require().NoError(err)
	s.eth.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return *msg.To == common.HexToAddress(string(contractAddr)) && bytes.HasPrefix(msg.Data, selector)
	}), mock.Anything).Return(encoded, nil)
}

func (s *artworkSuite) TestOwnerOf() {
	s.expect("ownerOf", common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"))
	owner, err := s.subject.OwnerOf(mockCtx, big.NewInt(1))
	s.NoError(err)
	s.Equal(domain.Address("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), owner)
}

func (s *artworkSuite) TestTokenURI() {
	s.expect("tokenURI", "QmMetadataCid")
	uri, err := s.subject.TokenURI(mockCtx, big.NewInt(1))
	s.NoError(err)
	s.Equal("QmMetadataCid", uri)
}

func (s *artworkSuite) TestGetCreator() {
	s.expect("getCreator", common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"))
	creator, err := s.subject.GetCreator(mockCtx, big.NewInt(1))
	s.NoError(err)
	s.Equal(domain.Address("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"), creator)
}

func (s *artworkSuite) TestGetPrice() {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	s.expect("getPrice", wei)
	price, err := s.subject.GetPrice(mockCtx, big.NewInt(1))
	s.NoError(err)
	s.Equal(0, wei.Cmp(price))
}

func (s *artworkSuite) TestTotalSupply() {
	s.expect("totalSupply", big.NewInt(3))
	total, err := s.subject.TotalSupply(mockCtx)
	s.NoError(err)
	s.Equal(int64(3), total.Int64())
}

func (s *artworkSuite) TestOwnerOfReverted() {
	s.eth.On("CallContract", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("execution reverted: ERC721: invalid token ID"))
	_, err := s.subject.OwnerOf(mockCtx, big.NewInt(99))
	s.ErrorIs(err, domain.ErrContractReverted)
}
