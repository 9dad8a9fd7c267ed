// Package sessions tracks live PPPoE sessions in redis. The NAS
// accounting hook writes sessions in; the console reads them to render
// the Online column and the Online Sessions page.
package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kmwangi/netbill-golang/internal/models"
)

const (
	sessionKeyPrefix = "netbill:session:"

	// Sessions expire on their own if the NAS stops refreshing them,
	// so a crashed NAS cannot leave subscribers "online" forever.
	sessionTTL = 10 * time.Minute
)

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func sessionKey(subscriberID string) string {
	return sessionKeyPrefix + subscriberID
}

// SetOnline records (or refreshes) a live session.
func (s *Store) SetOnline(ctx context.Context, session models.OnlineSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.SubscriberID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// SetOffline drops a session immediately (subscriber disconnected or
// was suspended).
func (s *Store) SetOffline(ctx context.Context, subscriberID string) error {
	if err := s.client.Del(ctx, sessionKey(subscriberID)).Err(); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// OnlineIDs returns the set of subscriber ids with a live session,
// used to annotate subscriber list rows in one round trip.
func (s *Store) OnlineIDs(ctx context.Context, subscriberIDs []string) (map[string]bool, error) {
	online := make(map[string]bool, len(subscriberIDs))
	if len(subscriberIDs) == 0 {
		return online, nil
	}

	keys := make([]string, len(subscriberIDs))
	for i, id := range subscriberIDs {
		keys[i] = sessionKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading sessions: %w", err)
	}
	for i, v := range values {
		online[subscriberIDs[i]] = v != nil
	}
	return online, nil
}

// ListOnline returns every live session for the Online Sessions page.
func (s *Store) ListOnline(ctx context.Context) ([]models.OnlineSession, error) {
	var sessions []models.OnlineSession

	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue // expired between SCAN and GET
		}
		if err != nil {
			return nil, fmt.Errorf("reading session: %w", err)
		}
		var session models.OnlineSession
		if err := json.Unmarshal(data, &session); err != nil {
			continue // skip unreadable entries rather than break the page
		}
		sessions = append(sessions, session)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning sessions: %w", err)
	}
	return sessions, nil
}
