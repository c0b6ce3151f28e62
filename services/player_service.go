package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gonect/foosball-ladder/models"
	"github.com/gonect/foosball-ladder/repositories"
	"github.com/gonect/foosball-ladder/storage"
)

type CreatePlayerInput struct {
	Name       string
	Nickname   string
	Department string
}

type UpdatePlayerInput struct {
	Name       *string
	Nickname   *string
	Department *string
}

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	// List returns the roster ordered by rating, best first.
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id string) error
	UploadAvatar(ctx context.Context, id string, filename, contentType string, data io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	log        *slog.Logger
}

// NewPlayerService builds the roster service. uploader may be nil when
// no object store is configured; avatar uploads then fail cleanly.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, log *slog.Logger) PlayerService {
	return &playerService{playerRepo: playerRepo, uploader: uploader, log: log}
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		ID:         uuid.NewString(),
		Name:       name,
		Nickname:   strings.TrimSpace(input.Nickname),
		Department: strings.TrimSpace(input.Department),
		JoinedAt:   time.Now().UTC(),
		Rating:     models.StartingRating,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}

	s.log.Info("player created", "player_id", player.ID, "name", player.Name)
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.resolveAvatarURL(player)
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.resolveAvatarURL(&players[i])
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPlayerNameRequired
		}
		player.Name = name
	}
	if input.Nickname != nil {
		player.Nickname = strings.TrimSpace(*input.Nickname)
	}
	if input.Department != nil {
		player.Department = strings.TrimSpace(*input.Department)
	}

	if err := s.playerRepo.UpdateProfile(ctx, player); err != nil {
		return nil, fmt.Errorf("updating player: %w", err)
	}
	s.resolveAvatarURL(player)
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id string) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("deleting player: %w", err)
	}

	if player.AvatarKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *player.AvatarKey); err != nil {
			s.log.Warn("failed to delete avatar object", "player_id", id, "key", *player.AvatarKey, "error", err)
		}
	}
	return nil
}

func (s *playerService) UploadAvatar(ctx context.Context, id string, filename, contentType string, data io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrAvatarStorageDisabled
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", id, uuid.NewString(), path.Ext(filename))
	result, err := s.uploader.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}

	oldKey := player.AvatarKey
	player.AvatarKey = &result.Key
	if err := s.playerRepo.UpdateProfile(ctx, player); err != nil {
		return nil, fmt.Errorf("saving avatar key: %w", err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.log.Warn("failed to delete previous avatar", "player_id", id, "key", *oldKey, "error", err)
		}
	}

	s.log.Info("avatar uploaded", "player_id", id, "key", result.Key)
	s.resolveAvatarURL(player)
	return player, nil
}

func (s *playerService) resolveAvatarURL(player *models.Player) {
	if player.AvatarKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*player.AvatarKey)
	player.AvatarURL = &url
}
