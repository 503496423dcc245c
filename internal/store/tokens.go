package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gocentral/gocentral/internal/central"
)

// TokenStore binds the store to one customer/client credential pair and
// satisfies the dispatcher token persistence interface.
type TokenStore struct {
	store      *Store
	customerID string
	clientID   string
}

// TokenStore returns a token store scoped to the given credential pair.
func (s *Store) TokenStore(customerID, clientID string) (*TokenStore, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, errors.New("client id is required")
	}
	return &TokenStore{store: s, customerID: strings.TrimSpace(customerID), clientID: strings.TrimSpace(clientID)}, nil
}

// Load returns the persisted token pair, or nil when none is stored.
func (t *TokenStore) Load(ctx context.Context) (*central.Token, error) {
	if t == nil || t.store == nil || t.store.DB == nil {
		return nil, errors.New("token store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		access     string
		refresh    string
		tokenType  sql.NullString
		expiresIn  int
		obtainedAt int64
	)

	row := t.store.DB.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, token_type, expires_in, obtained_at
		FROM tokens
		WHERE customer_id = ? AND client_id = ?
	`, t.customerID, t.clientID)

	if err := row.Scan(&access, &refresh, &tokenType, &expiresIn, &obtainedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch token: %w", err)
	}

	token := &central.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		ObtainedAt:   time.Unix(obtainedAt, 0).UTC(),
	}
	if tokenType.Valid {
		token.TokenType = tokenType.String
	}
	return token, nil
}

// Store persists the token pair, replacing any previous one for the same
// credential pair.
func (t *TokenStore) Store(ctx context.Context, token *central.Token) error {
	if t == nil || t.store == nil || t.store.DB == nil {
		return errors.New("token store is not initialized")
	}
	if token == nil {
		return errors.New("token is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	_, err := t.store.DB.ExecContext(ctx, `
		INSERT INTO tokens (customer_id, client_id, access_token, refresh_token, token_type, expires_in, obtained_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(customer_id, client_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expires_in = excluded.expires_in,
			obtained_at = excluded.obtained_at
	`, t.customerID, t.clientID, token.AccessToken, token.RefreshToken, token.TokenType, token.ExpiresIn, token.ObtainedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	return nil
}
