package usecase

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/artwork"
	mArtwork "github.com/x-xyz/artgallery/domain/artwork/mocks"
	"github.com/x-xyz/artgallery/domain/keys"
	"github.com/x-xyz/artgallery/domain/mocks"
	"github.com/x-xyz/artgallery/service/cache"
	"github.com/x-xyz/artgallery/service/cache/provider/memory"
	"github.com/x-xyz/artgallery/stores/metadata/repository"
)

const (
	gateway = "https://gateway.example/ipfs/"
	alice   = domain.Address("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob     = domain.Address("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	creator = domain.Address("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
)

var (
	mockCtx    = bCtx.Background()
	errNetwork = errors.New("dial tcp: connection reset by peer")
	oneEther   = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

func bigId(i int64) *big.Int {
	return big.NewInt(i)
}

type testsuite struct {
	suite.Suite
	contract *mArtwork.ContractRepo
	metadata *mocks.MetadataUseCase
	cache    domain.MetadataCacheRepo
	subject  artwork.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.contract = &mArtwork.ContractRepo{}
	ts.metadata = &mocks.MetadataUseCase{}
	ts.cache = repository.NewCacheRepo(cache.New(cache.ServiceConfig{
		Pfx:   keys.PfxArtworkMetadata,
		Cache: memory.NewMemory("test"),
	}))
	ts.subject = New(&ArtworkUseCaseCfg{
		Contract:    ts.contract,
		Metadata:    ts.metadata,
		Cache:       ts.cache,
		Gateway:     gateway,
		Workers:     4,
		MaxAttempts: 2,
		Backoff:     time.Millisecond,
	})
}

// mint registers a fully resolvable token
func (ts *testsuite) mint(id int64, owner domain.Address, doc string) {
	uri := fmt.Sprintf("QmMeta%d", id)
	ts.contract.On("OwnerOf", mock.Anything, bigId(id)).Return(owner, nil)
	ts.contract.On("TokenURI", mock.Anything, bigId(id)).Return(uri, nil)
	ts.contract.On("GetCreator", mock.Anything, bigId(id)).Return(creator, nil)
	ts.contract.On("GetPrice", mock.Anything, bigId(id)).Return(oneEther, nil)
	ts.metadata.On("GetFromUri", mock.Anything, uri).Return(&domain.Metadata{RawMessage: []byte(doc)}, nil)
}

func (ts *testsuite) TestGet() {
	price, _ := new(big.Int).SetString("1500000000000000000", 10)
	ts.contract.On("OwnerOf", mock.Anything, bigId(1)).Return(domain.Address("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"), nil).Once()
	ts.contract.On("TokenURI", mock.Anything, bigId(1)).Return("QmMeta1", nil).Once()
	ts.contract.On("GetCreator", mock.Anything, bigId(1)).Return(creator, nil).Once()
	ts.contract.On("GetPrice", mock.Anything, bigId(1)).Return(price, nil).Once()
	ts.metadata.On("GetFromUri", mock.Anything, "QmMeta1").
		Return(&domain.Metadata{RawMessage: []byte(`{"name":"Sunset","image":"ipfs://QmImg"}`)}, nil).Once()

	a, err := ts.subject.Get(mockCtx, 1)
	ts.Require().NoError(err)
	ts.Equal(domain.TokenId(1), a.TokenId)
	ts.Equal("Sunset", a.Name)
	ts.Equal("https://gateway.example/ipfs/QmImg", a.ImageUrl)
	ts.Equal("1.5", a.Price.String())
	ts.Equal(creator, a.Creator)
	ts.Equal(alice, a.Owner)
	ts.True(a.IsForSale)
	ts.contract.AssertExpectations(ts.T())
	ts.metadata.AssertExpectations(ts.T())
}

func (ts *testsuite) TestGetPlaceholderNameAndPlainImage() {
	ts.mint(4, alice, `{"image":"https://cdn.example/a.png"}`)

	a, err := ts.subject.Get(mockCtx, 4)
	ts.Require().NoError(err)
	ts.Equal("Artwork #4", a.Name)
	ts.Equal("https://cdn.example/a.png", a.ImageUrl)
}

func (ts *testsuite) TestGetLooselyTypedMetadata() {
	ts.mint(5, alice, `{"name":"Cosmic Dream","image":"ipfs://QmImg","attributes":{"Creator":"0xB"},"created_at":1700000000}`)

	a, err := ts.subject.Get(mockCtx, 5)
	ts.Require().NoError(err)
	ts.Equal("Cosmic Dream", a.Name)
	ts.Equal("https://gateway.example/ipfs/QmImg", a.ImageUrl)
}

func (ts *testsuite) TestGetLargeMetadataFetchedOnce() {
	doc := fmt.Sprintf(`{"name":"Cosmic Dream","description":"%s"}`, strings.Repeat("d", 40<<10))
	ts.mint(6, alice, doc)

	for i := 0; i < 2; i++ {
		a, err := ts.subject.Get(mockCtx, 6)
		ts.Require().NoError(err)
		ts.Equal("Cosmic Dream", a.Name)
	}
	ts.metadata.AssertNumberOfCalls(ts.T(), "GetFromUri", 1)
	ts.contract.AssertNumberOfCalls(ts.T(), "TokenURI", 1)
}

func (ts *testsuite) TestGetInvalidTokenId() {
	for _, id := range []domain.TokenId{0, -3} {
		_, err := ts.subject.Get(mockCtx, id)
		ts.ErrorIs(err, domain.ErrNotFound)
	}
	ts.contract.AssertNotCalled(ts.T(), "OwnerOf", mock.Anything, mock.Anything)
}

func (ts *testsuite) TestGetOutOfRange() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(99)).
		Return(domain.Address(""), fmt.Errorf("execution reverted: %w", domain.ErrContractReverted))

	_, err := ts.subject.Get(mockCtx, 99)
	ts.ErrorIs(err, domain.ErrNotFound)
	// reverts are final
	ts.contract.AssertNumberOfCalls(ts.T(), "OwnerOf", 1)
	ts.metadata.AssertNotCalled(ts.T(), "GetFromUri", mock.Anything, mock.Anything)
}

func (ts *testsuite) TestGetUsesCachedMetadataAndFreshOwner() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(2)).Return(alice, nil).Once()
	ts.contract.On("OwnerOf", mock.Anything, bigId(2)).Return(bob, nil).Once()
	ts.contract.On("TokenURI", mock.Anything, bigId(2)).Return("QmMeta2", nil).Once()
	ts.contract.On("GetCreator", mock.Anything, bigId(2)).Return(creator, nil)
	ts.contract.On("GetPrice", mock.Anything, bigId(2)).Return(oneEther, nil)
	ts.metadata.On("GetFromUri", mock.Anything, "QmMeta2").
		Return(&domain.Metadata{RawMessage: []byte(`{"name":"Dawn"}`)}, nil).Once()

	first, err := ts.subject.Get(mockCtx, 2)
	ts.Require().NoError(err)
	second, err := ts.subject.Get(mockCtx, 2)
	ts.Require().NoError(err)

	ts.Equal("Dawn", second.Name)
	ts.Equal(alice, first.Owner)
	ts.Equal(bob, second.Owner)
	ts.contract.AssertNumberOfCalls(ts.T(), "TokenURI", 1)
	ts.metadata.AssertNumberOfCalls(ts.T(), "GetFromUri", 1)
}

func (ts *testsuite) TestGetEmptyTokenURI() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(5)).Return(alice, nil)
	ts.contract.On("TokenURI", mock.Anything, bigId(5)).Return("", nil)

	_, err := ts.subject.Get(mockCtx, 5)
	ts.ErrorIs(err, domain.ErrNotFound)
	ts.contract.AssertNumberOfCalls(ts.T(), "TokenURI", 1)
	ts.metadata.AssertNotCalled(ts.T(), "GetFromUri", mock.Anything, mock.Anything)
}

func (ts *testsuite) TestGetRetriesTransientFailure() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(6)).Return(domain.Address(""), errNetwork).Once()
	ts.mint(6, alice, `{"name":"Retry"}`)

	a, err := ts.subject.Get(mockCtx, 6)
	ts.Require().NoError(err)
	ts.Equal("Retry", a.Name)
	ts.contract.AssertNumberOfCalls(ts.T(), "OwnerOf", 2)
}

func (ts *testsuite) TestGetGivesUpAfterMaxAttempts() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(7)).Return(domain.Address(""), errNetwork)

	_, err := ts.subject.Get(mockCtx, 7)
	ts.ErrorIs(err, domain.ErrNotFound)
	ts.contract.AssertNumberOfCalls(ts.T(), "OwnerOf", 2)
}

func (ts *testsuite) TestGetMetadataTimeout() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(8)).Return(alice, nil)
	ts.contract.On("TokenURI", mock.Anything, bigId(8)).Return("QmSlow", nil)
	ts.metadata.On("GetFromUri", mock.Anything, "QmSlow").Return(nil, domain.ErrMetadataTimeout)

	_, err := ts.subject.Get(mockCtx, 8)
	ts.ErrorIs(err, domain.ErrNotFound)
	ts.contract.AssertNotCalled(ts.T(), "GetCreator", mock.Anything, mock.Anything)

	_, err = ts.cache.Get(mockCtx, 8)
	ts.Equal(domain.ErrNotFound, err)
}

func (ts *testsuite) TestGetMalformedMetadataNotRetried() {
	ts.contract.On("OwnerOf", mock.Anything, bigId(9)).Return(alice, nil)
	ts.contract.On("TokenURI", mock.Anything, bigId(9)).Return("QmBroken", nil)
	ts.metadata.On("GetFromUri", mock.Anything, "QmBroken").Return(nil, domain.ErrInvalidJsonFormat)

	_, err := ts.subject.Get(mockCtx, 9)
	ts.ErrorIs(err, domain.ErrNotFound)
	ts.metadata.AssertNumberOfCalls(ts.T(), "GetFromUri", 1)
}

func (ts *testsuite) TestListSortedWithFailures() {
	ts.contract.On("TotalSupply", mock.Anything).Return(big.NewInt(3), nil)
	ts.mint(1, alice, `{"name":"One"}`)
	ts.contract.On("OwnerOf", mock.Anything, bigId(2)).Return(domain.Address(""), errNetwork)
	ts.mint(3, bob, `{"name":"Three"}`)

	res := ts.subject.List(mockCtx)
	ts.Require().Len(res.Artworks, 2)
	ts.Equal(domain.TokenId(1), res.Artworks[0].TokenId)
	ts.Equal(domain.TokenId(3), res.Artworks[1].TokenId)
	ts.Equal([]domain.TokenId{2}, res.Failed)
}

func (ts *testsuite) TestListSecondOwnerFails() {
	ts.contract.On("TotalSupply", mock.Anything).Return(big.NewInt(2), nil)
	ts.mint(1, alice, `{"name":"One"}`)
	ts.contract.On("OwnerOf", mock.Anything, bigId(2)).
		Return(domain.Address(""), fmt.Errorf("boom: %w", domain.ErrContractReverted))

	res := ts.subject.List(mockCtx)
	ts.Require().Len(res.Artworks, 1)
	ts.Equal(domain.TokenId(1), res.Artworks[0].TokenId)
	ts.Equal([]domain.TokenId{2}, res.Failed)
}

func (ts *testsuite) TestListOmitsMetadataTimeout() {
	ts.contract.On("TotalSupply", mock.Anything).Return(big.NewInt(2), nil)
	ts.mint(1, alice, `{"name":"One"}`)
	ts.contract.On("OwnerOf", mock.Anything, bigId(2)).Return(alice, nil)
	ts.contract.On("TokenURI", mock.Anything, bigId(2)).Return("QmSlow", nil)
	ts.metadata.On("GetFromUri", mock.Anything, "QmSlow").Return(nil, domain.ErrMetadataTimeout)

	res := ts.subject.List(mockCtx)
	ts.Require().Len(res.Artworks, 1)
	ts.Equal(domain.TokenId(1), res.Artworks[0].TokenId)
	ts.Equal([]domain.TokenId{2}, res.Failed)
}

func (ts *testsuite) TestListManyTokens() {
	const total = 25
	ts.contract.On("TotalSupply", mock.Anything).Return(big.NewInt(total), nil)
	for i := int64(1); i <= total; i++ {
		ts.mint(i, alice, fmt.Sprintf(`{"name":"Art %d"}`, i))
	}

	res := ts.subject.List(mockCtx)
	ts.Require().Len(res.Artworks, total)
	ts.Empty(res.Failed)
	seen := map[domain.TokenId]bool{}
	for i, a := range res.Artworks {
		ts.Equal(domain.TokenId(i+1), a.TokenId)
		ts.False(seen[a.TokenId])
		seen[a.TokenId] = true
	}
}

func (ts *testsuite) TestListEmptyCollection() {
	ts.contract.On("TotalSupply", mock.Anything).Return(big.NewInt(0), nil)

	res := ts.subject.List(mockCtx)
	ts.NotNil(res.Artworks)
	ts.Empty(res.Artworks)
	ts.Empty(res.Failed)
}

func (ts *testsuite) TestListTotalSupplyFails() {
	ts.contract.On("TotalSupply", mock.Anything).Return(nil, errNetwork)

	res := ts.subject.List(mockCtx)
	ts.NotNil(res.Artworks)
	ts.Empty(res.Artworks)
	ts.Empty(res.Failed)
	ts.contract.AssertNotCalled(ts.T(), "OwnerOf", mock.Anything, mock.Anything)
}

func (ts *testsuite) TestListByOwner() {
	ts.contract.On("TotalSupply", mock.Anything).Return(big.NewInt(3), nil)
	ts.mint(1, alice, `{"name":"One"}`)
	ts.mint(2, bob, `{"name":"Two"}`)
	ts.mint(3, alice, `{"name":"Three"}`)

	for _, addr := range []domain.Address{alice, domain.Address(alice.ToLowerStr()), "0x70997970C51812DC3A010C7D01B50E0D17DC79C8"} {
		res := ts.subject.ListByOwner(mockCtx, addr)
		ts.Require().Len(res.Artworks, 2, addr)
		ts.Equal(domain.TokenId(1), res.Artworks[0].TokenId)
		ts.Equal(domain.TokenId(3), res.Artworks[1].TokenId)
	}

	res := ts.subject.ListByOwner(mockCtx, "0x0000000000000000000000000000000000000001")
	ts.Empty(res.Artworks)
}

func (ts *testsuite) TestIsRetryable() {
	ts.False(isRetryable(domain.ErrContractReverted))
	ts.False(isRetryable(domain.ErrNoMetadata))
	ts.False(isRetryable(domain.ErrInvalidJsonFormat))
	ts.False(isRetryable(domain.ErrUnsupportedSchema))
	ts.False(isRetryable(&domain.StatusError{StatusCode: 404}))
	ts.True(isRetryable(&domain.StatusError{StatusCode: 503}))
	ts.True(isRetryable(domain.ErrMetadataTimeout))
	ts.True(isRetryable(errNetwork))
}
