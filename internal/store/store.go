// Package store owns the persisted JSON document and the in-memory
// collections loaded from it. The whole document is rewritten synchronously
// after every mutation; the last completed save wins.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/baharkarakas/storefront/internal/metrics"
	"github.com/baharkarakas/storefront/internal/models"
)

var ErrNotFound = errors.New("not found")

// counters allocate ids monotonically so a delete followed by a create can
// never reuse an id. They are persisted alongside the collections.
type counters struct {
	Products int `json:"products"`
	Orders   int `json:"orders"`
	Users    int `json:"users"`
}

type document struct {
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
	Users    []models.User    `json:"users"`
	Counters counters         `json:"counters"`
}

// Store guards all read-modify-write sequences with a single mutex; Go's
// http server runs handlers on separate goroutines, so unlike the original
// single-threaded runtime the guard is load-bearing here.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the document at path. A missing file starts an empty store; it
// is created on the first mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		return nil, err
	}
	s.seedCounters()
	return s, nil
}

// seedCounters initializes any zero counter from the highest id suffix in
// its collection, so documents written before counters existed cannot hand
// out duplicate ids.
func (s *Store) seedCounters() {
	if s.doc.Counters.Products == 0 {
		for _, p := range s.doc.Products {
			if n := idSuffix(p.ID); n > s.doc.Counters.Products {
				s.doc.Counters.Products = n
			}
		}
	}
	if s.doc.Counters.Orders == 0 {
		for _, o := range s.doc.Orders {
			if n := idSuffix(o.ID); n > s.doc.Counters.Orders {
				s.doc.Counters.Orders = n
			}
		}
	}
	if s.doc.Counters.Users == 0 {
		for _, u := range s.doc.Users {
			if n := idSuffix(u.ID); n > s.doc.Counters.Users {
				s.doc.Counters.Users = n
			}
		}
	}
}

func idSuffix(id string) int {
	if len(id) < 2 {
		return 0
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0
	}
	return n
}

// save rewrites the whole document. Callers hold s.mu.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		metrics.StoreSaveErrors.Inc()
		return err
	}
	metrics.StoreSaves.Inc()
	return nil
}

// ---------- products ----------

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.doc.Products))
	copy(out, s.doc.Products)
	return out
}

func (s *Store) FindProduct(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.doc.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *Store) AddProduct(p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Counters.Products++
	p.ID = "p" + strconv.Itoa(s.doc.Counters.Products)
	s.doc.Products = append(s.doc.Products, p)
	return p, s.save()
}

// MutateProduct applies fn to the stored record under the lock and persists
// the result.
func (s *Store) MutateProduct(id string, fn func(*models.Product)) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Products {
		if s.doc.Products[i].ID == id {
			fn(&s.doc.Products[i])
			return s.doc.Products[i], s.save()
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *Store) RemoveProduct(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.doc.Products {
		if p.ID == id {
			s.doc.Products = append(s.doc.Products[:i], s.doc.Products[i+1:]...)
			return p, s.save()
		}
	}
	return models.Product{}, ErrNotFound
}

// ---------- orders ----------

func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.doc.Orders))
	copy(out, s.doc.Orders)
	return out
}

func (s *Store) FindOrder(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.doc.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (s *Store) AddOrder(o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Counters.Orders++
	o.ID = "o" + strconv.Itoa(s.doc.Counters.Orders)
	s.doc.Orders = append(s.doc.Orders, o)
	return o, s.save()
}

func (s *Store) MutateOrder(id string, fn func(*models.Order)) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Orders {
		if s.doc.Orders[i].ID == id {
			fn(&s.doc.Orders[i])
			return s.doc.Orders[i], s.save()
		}
	}
	return models.Order{}, ErrNotFound
}

func (s *Store) RemoveOrder(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.doc.Orders {
		if o.ID == id {
			s.doc.Orders = append(s.doc.Orders[:i], s.doc.Orders[i+1:]...)
			return o, s.save()
		}
	}
	return models.Order{}, ErrNotFound
}

// ---------- users ----------

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.doc.Users))
	copy(out, s.doc.Users)
	return out
}

func (s *Store) FindUser(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.doc.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) FindUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.doc.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) AddUser(u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Counters.Users++
	u.ID = "u" + strconv.Itoa(s.doc.Counters.Users)
	s.doc.Users = append(s.doc.Users, u)
	return u, s.save()
}

func (s *Store) MutateUser(id string, fn func(*models.User)) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Users {
		if s.doc.Users[i].ID == id {
			fn(&s.doc.Users[i])
			return s.doc.Users[i], s.save()
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) RemoveUser(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.doc.Users {
		if u.ID == id {
			s.doc.Users = append(s.doc.Users[:i], s.doc.Users[i+1:]...)
			return u, s.save()
		}
	}
	return models.User{}, ErrNotFound
}
