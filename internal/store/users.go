package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/verilens/verilens/internal/models"
)

const usersCollection = "users"

var (
	// ErrNotFound is returned when a looked-up document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists is returned when registering an already-used email.
	ErrEmailExists = errors.New("email already registered")
)

// UserStore persists accounts in the users collection, keyed by user ID.
type UserStore struct {
	client *firestore.Client
}

// NewUserStore creates a UserStore over an existing Firestore client.
func NewUserStore(client *firestore.Client) *UserStore {
	return &UserStore{client: client}
}

// Create inserts a new user, failing with ErrEmailExists when the email is
// already taken.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	existing, err := s.ByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrEmailExists
	}

	if _, err := s.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ByID fetches a user by document ID.
func (s *UserStore) ByID(ctx context.Context, id string) (*models.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return &user, nil
}

// ByEmail fetches a user by email address.
func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	iter := s.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// UpdateLanguage changes the user's preferred response locale.
func (s *UserStore) UpdateLanguage(ctx context.Context, id, language string) error {
	_, err := s.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "language", Value: language},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update language for user %s: %w", id, err)
	}
	return nil
}
