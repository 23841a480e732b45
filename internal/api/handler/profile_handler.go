package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// ProfileHandler updates freelancer profiles and uploads avatars.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	Bio           *string `json:"bio"`
	Twitter       *string `json:"twitter"`
	Site          *string `json:"site"`
	Farcaster     *string `json:"farcaster"`
	WalletAddress *string `json:"wallet_address"`
}

// Update handles PUT /v1/profile (freelancer only). Absent fields are left
// untouched.
func (h *ProfileHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	profile, err := h.service.UpdateFreelancer(c.Request().Context(), session.Principal.ID, ports.FreelancerProfileUpdate{
		Bio:           req.Bio,
		Twitter:       req.Twitter,
		Site:          req.Site,
		Farcaster:     req.Farcaster,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UploadAvatar handles POST /v1/profile/avatar (multipart, field "file").
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	if fileHeader.Size > maxAvatarBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxAvatarBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file"})
	}
	if len(data) > maxAvatarBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
	}

	url, err := h.service.UploadAvatar(c.Request().Context(), session.Principal.ID, ports.AvatarUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
