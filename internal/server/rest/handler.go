package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/labstack/echo/v4"
)

type userRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (r *userRequest) toModel() *models.User {
	return &models.User{
		Email:     r.Email,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

func bindUser(c echo.Context) (*models.User, error) {
	var req userRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return nil, common.ErrorValidation
	}
	return req.toModel(), nil
}

// CreateUser handles POST /users.
func (s *HTTPServer) CreateUser(c echo.Context) error {
	candidate, err := bindUser(c)
	if err != nil {
		return err
	}

	created, err := s.users.Create(c.Request().Context(), candidate)
	if err != nil {
		return err
	}

	return success(c, http.StatusCreated, created)
}

// UpdateUser handles PUT /users/:userId.
func (s *HTTPServer) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return common.ErrorValidation
	}

	candidate, err := bindUser(c)
	if err != nil {
		return err
	}

	updated, err := s.users.Update(c.Request().Context(), id, candidate)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, updated)
}

// LookupUser handles GET /users?email=.
func (s *HTTPServer) LookupUser(c echo.Context) error {
	u, err := s.users.Lookup(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, u)
}

func (s *HTTPServer) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": common.ServiceName,
		"time":    time.Now().Format(time.RFC3339),
	})
}
