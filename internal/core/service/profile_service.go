package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// pfpPrefix matches the storage bucket the original profile images live in.
const pfpPrefix = "pfp"

// ProfileService updates freelancer profiles and uploads avatars to the
// blob store.
type ProfileService struct {
	freelancers ports.FreelancerRepository
	blobs       ports.BlobStore
	log         zerolog.Logger
}

func NewProfileService(freelancers ports.FreelancerRepository, blobs ports.BlobStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{freelancers: freelancers, blobs: blobs, log: log}
}

// UpdateFreelancer applies the partial update and returns the fresh profile.
func (s *ProfileService) UpdateFreelancer(ctx context.Context, freelancerID string, upd ports.FreelancerProfileUpdate) (*domain.FreelancerProfile, error) {
	if err := s.freelancers.Update(ctx, freelancerID, upd); err != nil {
		return nil, fmt.Errorf("update freelancer %s: %w", freelancerID, err)
	}
	return s.freelancers.FindByID(ctx, freelancerID)
}

// UploadAvatar stores the image under a fresh key, records the public URL on
// the profile, and returns the URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, freelancerID string, upload ports.AvatarUpload) (string, error) {
	ext := strings.ToLower(path.Ext(upload.FileName))
	key := fmt.Sprintf("%s/%s%s", pfpPrefix, uuid.NewString(), ext)

	publicURL, err := s.blobs.Put(ctx, key, upload.ContentType, upload.Data)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.freelancers.Update(ctx, freelancerID, ports.FreelancerProfileUpdate{ProfileImage: &publicURL}); err != nil {
		return "", fmt.Errorf("store avatar url: %w", err)
	}

	s.log.Info().Str("freelancer_id", freelancerID).Str("key", key).Msg("avatar uploaded")
	return publicURL, nil
}
