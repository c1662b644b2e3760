package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/delivery"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/artwork"
	"github.com/x-xyz/artgallery/domain/file"
	"github.com/x-xyz/artgallery/middleware"
)

type handler struct {
	au artwork.Usecase
	fu file.Usecase
}

// UploadResponse carries the content id of the pinned metadata document
type UploadResponse struct {
	MetadataUri string `json:"metadata_uri"`
}

// New registers the artwork routes
func New(e *echo.Echo, au artwork.Usecase, fu file.Usecase) {
	h := &handler{
		au: au,
		fu: fu,
	}

	g := e.Group("/api")
	g.GET("/artworks", h.list)
	g.GET("/artworks/:tokenId", h.get)
	g.POST("/artworks", h.upload)
	g.GET("/user/:address/artworks", h.listByOwner, middleware.IsValidAddress("address"))
}

// @Summary List artworks
// @Description Every minted artwork that could be resolved, ordered by token id
// @Tags artworks
// @Produce json
// @Success 200 {array} artwork.Artwork
// @Router /api/artworks [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	res := h.au.List(ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, res.Artworks)
}

// @Summary Get artwork
// @Tags artworks
// @Produce json
// @Param tokenId path int true "token id"
// @Success 200 {object} artwork.Artwork
// @Failure 400 {object} delivery.ErrorResponse
// @Failure 404 {object} delivery.ErrorResponse
// @Router /api/artworks/{tokenId} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tokenId, err := domain.ParseTokenId(c.Param("tokenId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, xerrors.Errorf("invalid token id: %w", err))
	}

	a, err := h.au.Get(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

// @Summary List artworks of an owner
// @Tags artworks
// @Produce json
// @Param address path string true "owner address"
// @Success 200 {array} artwork.Artwork
// @Failure 400 {object} delivery.ErrorResponse
// @Router /api/user/{address}/artworks [get]
func (h *handler) listByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := domain.Address(c.Param("address"))
	res := h.au.ListByOwner(ctx, owner)
	return delivery.MakeJsonResp(c, http.StatusOK, res.Artworks)
}

// @Summary Upload artwork
// @Description Pins the image and its metadata document, the returned uri is used to mint
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image"
// @Param name formData string true "name"
// @Param description formData string false "description"
// @Param price formData string true "price in ether"
// @Param creator_address formData string true "creator address"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} delivery.ErrorResponse
// @Failure 503 {object} delivery.ErrorResponse
// @Failure 500 {object} delivery.ErrorResponse
// @Router /api/artworks [post]
func (h *handler) upload(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fh, err := c.FormFile("file")
	if err != nil {
		ctx.WithField("err", err).Warn("c.FormFile failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "file is required")
	}

	payload := &file.ArtworkUploadPayload{
		FileName:       fh.Filename,
		Name:           c.FormValue("name"),
		Description:    c.FormValue("description"),
		Price:          c.FormValue("price"),
		CreatorAddress: domain.Address(c.FormValue("creator_address")),
	}

	if err := c.Validate(payload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, xerrors.Errorf("%s: %w", err.Error(), domain.ErrBadParamInput))
	}

	if price, err := decimal.NewFromString(payload.Price); err != nil || price.IsNegative() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "price must be a non-negative number")
	}

	src, err := fh.Open()
	if err != nil {
		ctx.WithField("err", err).Error("fh.Open failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	defer src.Close()

	if payload.Content, err = io.ReadAll(src); err != nil {
		ctx.WithField("err", err).Error("io.ReadAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	cid, err := h.fu.UploadArtwork(ctx, payload)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, UploadResponse{MetadataUri: cid})
}
