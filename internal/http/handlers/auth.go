package handlers

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apierrors "github.com/pribylovaa/invest-tips/internal/errors"
	"github.com/pribylovaa/invest-tips/internal/http/middleware"
)

// Register - POST /api/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, invalidArgument("invalid request body"))
		return
	}

	if in.Name == "" || in.Email == "" || in.Password == "" {
		apierrors.WriteError(w, r, invalidArgument("name, email and password are required"))
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "user created successfully",
		User:    userFromModel(*user),
	})
}

// Login - POST /api/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, invalidArgument("invalid request body"))
		return
	}

	sess, err := h.svc.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     sess.AccessToken,
		ExpiresAt: sess.ExpiresAt,
		User:      userFromModel(sess.User),
	})
}

// Me - GET /api/auth/me, требует Authenticate.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, status.Error(codes.Unauthenticated, "unauthenticated"))
		return
	}

	user, err := h.svc.UserByID(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(*user))
}
