package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("invalid email or password")

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type SignupInput struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Mobile     string
	Region     string
	Province   string
	CityMun    string
	Barangay   string
	Street     string
	PostalCode string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (*Customer, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, errors.New("username, email and password are required")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	code, err := s.repo.NextCode(ctx)
	if err != nil {
		return nil, err
	}
	c := &Customer{
		ID:           uuid.NewString(),
		Code:         code,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Mobile:       in.Mobile,
		Region:       in.Region,
		Province:     in.Province,
		CityMun:      in.CityMun,
		Barangay:     in.Barangay,
		Street:       in.Street,
		PostalCode:   in.PostalCode,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, c.ID)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*Customer, error) {
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !CheckPassword(c.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return c, nil
}

func (s *Service) Profile(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Mobile     string
	Region     string
	Province   string
	CityMun    string
	Barangay   string
	Street     string
	PostalCode string
}

// UpdateProfile applies non-empty fields only; empty strings leave the stored
// value unchanged.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*Customer, error) {
	updatePassword := false
	var newHash string
	if in.Password != "" {
		h, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		newHash = h
		updatePassword = true
	}

	c := &Customer{
		ID:           id,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: newHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Mobile:       in.Mobile,
		Region:       in.Region,
		Province:     in.Province,
		CityMun:      in.CityMun,
		Barangay:     in.Barangay,
		Street:       in.Street,
		PostalCode:   in.PostalCode,
	}
	if err := s.repo.Update(ctx, c, updatePassword); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
