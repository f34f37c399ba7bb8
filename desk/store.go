// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package desk

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/internal/log"
	"github.com/fanjia1024/ticketflow/ticket"
)

var (
	_ ConfigStore = (*Store)(nil)
	_ TicketStore = (*Store)(nil)
)

// Store is the in-memory desk store. The zero value is not usable; call
// NewStore, which seeds the workshop defaults.
type Store struct {
	mu      sync.RWMutex
	config  map[string]string
	tickets map[string]ticket.Ticket
}

// NewStore seeds the store with the values the exercises assert against.
func NewStore() *Store {
	s := &Store{
		config:  make(map[string]string),
		tickets: make(map[string]ticket.Ticket),
	}
	s.seedDefaults()
	return s
}

func (s *Store) seedDefaults() {
	s.config["theme"] = "dark"
	s.config["language"] = "en"
	s.config["desk_name"] = "ticketflow demo desk"
	for _, t := range []ticket.Ticket{
		{
			ID:        "TCK-1001",
			Question:  "I was charged twice for my subscription this month.",
			Category:  ticket.CategoryBilling,
			Status:    ticket.StatusCategorized,
			CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "TCK-1002",
			Question:  "The desktop app crashes on startup after the update.",
			Category:  ticket.CategoryTechnical,
			Status:    ticket.StatusOpen,
			CreatedAt: time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC),
		},
	} {
		s.tickets[t.ID] = t
	}
}

func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.config[key]
	if !ok {
		return "", errors.Wrapf(ErrNotFound, "config key %q", key)
	}
	return v, nil
}

func (s *Store) UpdateConfig(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("desk: empty config key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config[key] = value
	return nil
}

func (s *Store) GetTicket(ctx context.Context, id string) (ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return ticket.Ticket{}, errors.Wrapf(ErrNotFound, "ticket %q", id)
	}
	return t, nil
}

// UpdateTicket upserts t and returns the stored copy.
func (s *Store) UpdateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	if t.ID == "" {
		return ticket.Ticket{}, errors.New("desk: ticket without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[t.ID] = t
	return t, nil
}

// seedFile is the JSON document LoadSeed accepts.
type seedFile struct {
	Config  map[string]string `json:"config"`
	Tickets []ticket.Ticket   `json:"tickets"`
}

// LoadSeed merges a JSON seed file over the current contents.
func (s *Store) LoadSeed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse seed file")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range seed.Config {
		s.config[k] = v
	}
	for _, t := range seed.Tickets {
		if t.ID == "" {
			continue
		}
		s.tickets[t.ID] = t
	}
	return nil
}

// Watch reloads the seed file whenever it is written, until ctx is done.
// Workshop hosts edit the seed live between exercises.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "new watcher")
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "watch %s", path)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					if err := s.LoadSeed(path); err != nil {
						log.Error("reload seed %s: %v", path, err)
						continue
					}
					log.Info("reloaded seed %s", path)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("seed watcher: %v", err)
			}
		}
	}()
	return nil
}
