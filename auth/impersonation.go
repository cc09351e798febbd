package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hotel-pms/models"
)

const impersonationAudience = "impersonation"

// ImpersonationClaims name the super admin acting (Subject) and the hotel
// role they act as.
type ImpersonationClaims struct {
	HotelID string          `json:"hotel_id"`
	Role    models.RoleName `json:"role"`
	jwt.RegisteredClaims
}

func (c ImpersonationClaims) Target() (Assignment, error) {
	hotelID, err := uuid.Parse(c.HotelID)
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: bad hotel id", ErrInvalidToken)
	}
	if !c.Role.Valid() || !c.Role.HotelScoped() {
		return Assignment{}, fmt.Errorf("%w: bad role", ErrInvalidToken)
	}
	return Assignment{Role: c.Role, HotelID: &hotelID}, nil
}

// Impersonator signs and checks impersonation tokens.
type Impersonator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewImpersonator(secret string, ttl time.Duration) *Impersonator {
	return &Impersonator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Impersonator) TTL() time.Duration { return i.ttl }

// Issue signs a token letting actor act as role in hotelID until it expires.
func (i *Impersonator) Issue(actor uuid.UUID, target Assignment) (string, time.Time, error) {
	if target.HotelID == nil || !target.Role.HotelScoped() {
		return "", time.Time{}, fmt.Errorf("%w: impersonation needs a hotel role", ErrForbidden)
	}
	now := i.now()
	expires := now.Add(i.ttl)
	claims := ImpersonationClaims{
		HotelID: target.HotelID.String(),
		Role:    target.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.String(),
			Audience:  jwt.ClaimStrings{impersonationAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse verifies signature, expiry and that the token belongs to actor.
func (i *Impersonator) Parse(raw string, actor uuid.UUID) (ImpersonationClaims, error) {
	var claims ImpersonationClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(impersonationAudience),
		jwt.WithSubject(actor.String()),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return ImpersonationClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if _, err := claims.Target(); err != nil {
		return ImpersonationClaims{}, err
	}
	return claims, nil
}
