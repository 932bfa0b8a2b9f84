package service

import (
	"context"
	"errors"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

const qrImageSize = 256

// VehicleService serves vehicle profiles and their QR codes.
type VehicleService struct {
	vehicles repository.VehicleRepository
	qr       *auth.QRSigner
	hasher   *auth.Hasher
}

// VehicleProfileUpdate lists editable vehicle fields. Empty values are kept.
type VehicleProfileUpdate struct {
	EngineNumber string
	OwnerName    string
	Model        string
}

// NewVehicleService constructs the service.
func NewVehicleService(vehicles repository.VehicleRepository, qr *auth.QRSigner, hasher *auth.Hasher) *VehicleService {
	return &VehicleService{vehicles: vehicles, qr: qr, hasher: hasher}
}

// GetByRegistrationNumber fetches a vehicle.
func (s *VehicleService) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByRegistrationNumber(ctx, registrationNumber)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("vehicle", map[string]any{"registrationNumber": registrationNumber})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return vehicle, nil
}

// UpdateProfile edits owner, model and engine number.
func (s *VehicleService) UpdateProfile(ctx context.Context, registrationNumber string, in VehicleProfileUpdate) (*domain.Vehicle, error) {
	vehicle, err := s.GetByRegistrationNumber(ctx, registrationNumber)
	if err != nil {
		return nil, err
	}
	if in.EngineNumber != "" {
		hash, err := s.hasher.Hash(in.EngineNumber)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		vehicle.EngineNumberHash = hash
	}
	if in.OwnerName != "" {
		vehicle.OwnerName = in.OwnerName
	}
	if in.Model != "" {
		vehicle.Model = in.Model
	}
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}
	return vehicle, nil
}

// QRCode renders the signed QR payload for a vehicle as PNG.
func (s *VehicleService) QRCode(ctx context.Context, registrationNumber string) ([]byte, string, error) {
	vehicle, err := s.GetByRegistrationNumber(ctx, registrationNumber)
	if err != nil {
		return nil, "", err
	}
	payload := s.qr.Encode(vehicle.RegistrationNumber)
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return png, payload, nil
}

// ScanQR resolves a scanned payload to its vehicle.
func (s *VehicleService) ScanQR(ctx context.Context, payload string) (*domain.Vehicle, error) {
	registrationNumber, err := s.qr.Decode(payload)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidQR) {
			return nil, apperrors.NewValidationError("invalid qr code", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return s.GetByRegistrationNumber(ctx, registrationNumber)
}
