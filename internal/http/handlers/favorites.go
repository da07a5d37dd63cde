package handlers

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apierrors "github.com/pribylovaa/invest-tips/internal/errors"
	"github.com/pribylovaa/invest-tips/internal/http/middleware"
)

const msgTipIDRequired = "investmentTipId is required"

// ListFavorites - GET /api/user/favorites.
func (h *Handlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, status.Error(codes.Unauthenticated, "unauthenticated"))
		return
	}

	tips, err := h.svc.ListFavorites(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tipsFromModels(tips))
}

// AddFavorite - POST /api/user/favorites {"investmentTipId": N}, 201 с идеей.
func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, status.Error(codes.Unauthenticated, "unauthenticated"))
		return
	}

	var in FavoriteRequest
	if err := decodeStrict(r, &in); err != nil || in.InvestmentTipID <= 0 {
		apierrors.WriteError(w, r, invalidArgument(msgTipIDRequired))
		return
	}

	tip, err := h.svc.AddFavorite(r.Context(), uid, in.InvestmentTipID)
	if err != nil {
		if apierrors.Status(err).Code() == codes.NotFound {
			err = status.Error(codes.NotFound, msgTipNotFound)
		}
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tipFromModel(*tip))
}

// RemoveFavorite - DELETE /api/user/favorites {"investmentTipId": N}.
func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, status.Error(codes.Unauthenticated, "unauthenticated"))
		return
	}

	var in FavoriteRequest
	if err := decodeStrict(r, &in); err != nil || in.InvestmentTipID <= 0 {
		apierrors.WriteError(w, r, invalidArgument(msgTipIDRequired))
		return
	}

	if err := h.svc.RemoveFavorite(r.Context(), uid, in.InvestmentTipID); err != nil {
		if apierrors.Status(err).Code() == codes.NotFound {
			err = status.Error(codes.NotFound, "favorite not found or already removed")
		}
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "favorite removed successfully"})
}
