package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/middleware"
	"github.com/iliyamo/photo-gallery/internal/service"
)

// AuthHandler serves registration, the two login flows and the profile.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

// name and email match the users table column widths.
type registerReq struct {
	Name     string `json:"name" validate:"notblank,max=255"`
	Email    string `json:"email" validate:"notblank,max=255"`
	Password string `json:"password" validate:"notblank"`
}

type loginReq struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type adminLoginReq struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Register: create the account and return a user token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindAndValidate(c, &req); err != nil {
		return missingFields(err, "All fields are required")
	}
	tok, _, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResp{Token: tok.Token})
}

// Login: email/password for a user token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tok, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok.Token})
}

// AdminLogin: configured username/password for a short-lived admin token.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginReq
	if err := bindAndValidate(c, &req); err != nil {
		return missingFields(err, "Username and password are required")
	}
	tok, err := h.Auth.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok.Token})
}

// Profile returns {id, name, email} of the caller.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, ok := middleware.UserIDFrom(c)
	if !ok {
		return apperr.Unauthorized("Invalid token")
	}
	p, err := h.Auth.Profile(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
