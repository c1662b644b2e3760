package usecase

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/file"
	"github.com/x-xyz/artgallery/service/pinata"
	mPinata "github.com/x-xyz/artgallery/service/pinata/mocks"
)

var (
	mockCtx = ctx.Background()
	// smallest valid png header
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

type testsuite struct {
	suite.Suite
	pinata  *mPinata.Service
	subject *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.pinata = &mPinata.Service{}
	ts.subject = New(ts.pinata).(*impl)
	ts.subject.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	}
}

func (ts *testsuite) payload() *file.ArtworkUploadPayload {
	return &file.ArtworkUploadPayload{
		Content:        pngBytes,
		FileName:       "sunset.png",
		Name:           "Sunset",
		Description:    "warm",
		Price:          "0.5",
		CreatorAddress: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	}
}

func (ts *testsuite) TestUploadArtwork() {
	ts.pinata.On("Pin", mock.Anything, mock.MatchedBy(func(r io.Reader) bool {
		b, _ := io.ReadAll(r)
		return string(b) == string(pngBytes)
	}), "png", mock.Anything).Return("Qm123", nil).Once()

	var pinned *domain.MetadataDocument
	ts.pinata.On("PinJson", mock.Anything, mock.MatchedBy(func(v interface{}) bool {
		pinned, _ = v.(*domain.MetadataDocument)
		return pinned != nil
	}), mock.Anything).Return("Qm456", nil).Once()

	cid, err := ts.subject.UploadArtwork(mockCtx, ts.payload())
	ts.NoError(err)
	ts.Equal("Qm456", cid)

	ts.Require().NotNil(pinned)
	ts.Equal("Sunset", pinned.Name)
	ts.Equal("warm", pinned.Description)
	ts.Equal("ipfs://Qm123", pinned.Image)
	ts.Equal("2024-05-01T12:30:00.000000Z", pinned.CreatedAt)
	ts.Equal([]domain.MetadataAttribute{
		{TraitType: "Creator", Value: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
		{TraitType: "Category", Value: "Digital Art"},
		{TraitType: "Price", Value: "0.5 ETH"},
	}, pinned.Attributes)
	ts.pinata.AssertExpectations(ts.T())
}

func (ts *testsuite) TestUploadArtworkPinFailed() {
	ts.pinata.On("Pin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("status 500: %w", pinata.ErrRequestFailed)).Once()

	_, err := ts.subject.UploadArtwork(mockCtx, ts.payload())
	ts.ErrorIs(err, domain.ErrServiceUnavailable)
	ts.pinata.AssertNotCalled(ts.T(), "PinJson", mock.Anything, mock.Anything, mock.Anything)
}

func (ts *testsuite) TestUploadArtworkPinJsonUnreachable() {
	ts.pinata.On("Pin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("Qm123", nil).Once()
	ts.pinata.On("PinJson", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("timeout: %w", pinata.ErrUnreachable)).Once()

	_, err := ts.subject.UploadArtwork(mockCtx, ts.payload())
	ts.ErrorIs(err, domain.ErrServiceUnavailable)
}

func (ts *testsuite) TestUploadArtworkUnexpectedError() {
	ts.pinata.On("Pin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("multipart: broken")).Once()

	_, err := ts.subject.UploadArtwork(mockCtx, ts.payload())
	ts.ErrorIs(err, domain.ErrInternalServerError)
	ts.False(errors.Is(err, domain.ErrServiceUnavailable))
}

func (ts *testsuite) TestUploadArtworkInvalidInput() {
	p := ts.payload()
	p.Content = nil
	_, err := ts.subject.UploadArtwork(mockCtx, p)
	ts.ErrorIs(err, domain.ErrBadParamInput)

	p = ts.payload()
	p.CreatorAddress = "0x123"
	_, err = ts.subject.UploadArtwork(mockCtx, p)
	ts.ErrorIs(err, domain.ErrInvalidAddress)

	ts.pinata.AssertNotCalled(ts.T(), "Pin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (ts *testsuite) TestDetectExtension() {
	ts.Equal("png", detectExtension(pngBytes, "whatever.jpg"))
	ts.Equal("txt", detectExtension([]byte("plain words"), "notes.TXT"))
	ts.Equal("bin", detectExtension([]byte{0x00, 0x01, 0x02}, ""))
}
