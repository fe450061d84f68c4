package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/customer"
)

type signupRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Mobile     string `json:"mobile"`
	Region     string `json:"region"`
	Province   string `json:"province"`
	CityMun    string `json:"city_municipality"`
	Barangay   string `json:"barangay"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

// updateProfileRequest mirrors signupRequest with every field optional;
// empty fields leave the stored value unchanged.
type updateProfileRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Mobile     string `json:"mobile"`
	Region     string `json:"region"`
	Province   string `json:"province"`
	CityMun    string `json:"city_municipality"`
	Barangay   string `json:"barangay"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signupHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "username, email and password are required")
			return
		}
		cust, err := svc.Signup(c.Request.Context(), customer.SignupInput{
			Username:   req.Username,
			Email:      req.Email,
			Password:   req.Password,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Mobile:     req.Mobile,
			Region:     req.Region,
			Province:   req.Province,
			CityMun:    req.CityMun,
			Barangay:   req.Barangay,
			Street:     req.Street,
			PostalCode: req.PostalCode,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, cust)
	}
}

func loginHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password are required")
			return
		}
		cust, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func getProfileHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, err := svc.Profile(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func updateProfileHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		cust, err := svc.UpdateProfile(c.Request.Context(), c.Param("id"), customer.UpdateProfileInput{
			Username:   req.Username,
			Email:      req.Email,
			Password:   req.Password,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Mobile:     req.Mobile,
			Region:     req.Region,
			Province:   req.Province,
			CityMun:    req.CityMun,
			Barangay:   req.Barangay,
			Street:     req.Street,
			PostalCode: req.PostalCode,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}
