package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	profileDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/profile"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

// ProfileRepo is an in-memory ProfileRepository.
type ProfileRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*profileDomain.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{
		byID: make(map[uuid.UUID]*profileDomain.Profile),
	}
}

func (r *ProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Profile", id.String())
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, p *profileDomain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID()] = cloneProfile(p)
	return nil
}

func (r *ProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

func cloneProfile(p *profileDomain.Profile) *profileDomain.Profile {
	dob := p.DateOfBirth()
	if dob != nil {
		d := *dob
		dob = &d
	}
	return profileDomain.Reconstruct(
		p.ID(),
		p.Email(), p.Username(), p.FirstName(), p.LastName(),
		dob,
		p.Address(), p.PhoneNumber(), p.FavoriteBreed(),
		p.HasDogExperience(),
		p.AvatarURL(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}
