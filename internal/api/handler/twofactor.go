package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pongarena/playerhub/internal/api/middleware"
	"github.com/pongarena/playerhub/internal/api/request"
	"github.com/pongarena/playerhub/internal/api/response"
	"github.com/pongarena/playerhub/internal/services/twofactor"
)

// TwoFactorHandler handles TOTP enrollment and verification endpoints
type TwoFactorHandler struct {
	twoFactorService *twofactor.Service
}

// NewTwoFactorHandler creates a new two-factor handler
func NewTwoFactorHandler(twoFactorService *twofactor.Service) *TwoFactorHandler {
	return &TwoFactorHandler{
		twoFactorService: twoFactorService,
	}
}

// Enroll handles POST /api/v1/2fa/enroll. It rotates the player's TOTP
// secret and returns the enrollment URI.
func (h *TwoFactorHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	enrollment, err := h.twoFactorService.GenerateSecret(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EnrollmentFromService(enrollment))
}

// EnrollQR handles GET /api/v1/2fa/enroll/qr. It streams the current
// enrollment URI as an image/png QR code without rotating the secret.
func (h *TwoFactorHandler) EnrollQR(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	enrollment, err := h.twoFactorService.EnrollmentFor(player)
	if err != nil {
		if errors.Is(err, twofactor.ErrNotEnrolled) {
			WriteError(w, NewInvalidRequestError("no enrollment in progress"))
			return
		}
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := h.twoFactorService.WriteEnrollmentImage(w, enrollment.OtpauthURL); err != nil {
		// Headers already sent; nothing sensible left to write
		return
	}
}

// Verify handles POST /api/v1/2fa/verify. A valid code completes
// enrollment by enabling two-factor on the player record.
func (h *TwoFactorHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	valid := h.twoFactorService.Verify(player, req.Code)

	if valid && !player.TwoFAEnabled {
		if err := h.twoFactorService.TurnOn(r.Context(), player.ID); err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.VerifyResult{Valid: valid})
}
