package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

// memStore is an in-memory stand-in for the SQL repositories. It applies
// the same owner scoping rules so service tests can exercise isolation.
type memStore struct {
	mu sync.Mutex

	nextID        int
	users         map[int]models.User
	colours       map[int]models.Colour
	categories    map[int]models.Category
	subcategories map[int]models.Subcategory
	labels        map[int]models.Label
	entries       map[int]models.Entry
	links         map[[2]int]models.EntryLabel

	createErr error
	getCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[int]models.User{},
		colours:       map[int]models.Colour{},
		categories:    map[int]models.Category{},
		subcategories: map[int]models.Subcategory{},
		labels:        map[int]models.Label{},
		entries:       map[int]models.Entry{},
		links:         map[[2]int]models.EntryLabel{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func sortedKeys[V any](in map[int]V) []int {
	keys := make([]int, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// ---- users ----

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u models.User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return 0, repository.ErrDuplicate
		}
	}
	u.ID = r.id()
	r.users[u.ID] = u
	return u.ID, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(_ context.Context, id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, k := range sortedKeys(r.users) {
		out = append(out, r.users[k])
	}
	return out, nil
}

func (r memUsers) Update(_ context.Context, u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r memUsers) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ---- colours ----

type memColours struct{ *memStore }

func (r memColours) List(_ context.Context) ([]models.Colour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Colour{}
	for _, k := range sortedKeys(r.colours) {
		out = append(out, r.colours[k])
	}
	return out, nil
}

func (r memColours) Get(_ context.Context, id int) (models.Colour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.colours[id]
	if !ok {
		return models.Colour{}, repository.ErrNotFound
	}
	return c, nil
}

func (r memColours) Create(_ context.Context, c models.Colour) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	r.colours[c.ID] = c
	return c.ID, nil
}

func (r memColours) Update(_ context.Context, c models.Colour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.colours[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.colours[c.ID] = c
	return nil
}

func (r memColours) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.colours[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.colours, id)
	return nil
}

// ---- categories ----

type memCategories struct{ *memStore }

func (r memCategories) List(_ context.Context, userID int) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Category{}
	for _, k := range sortedKeys(r.categories) {
		if c := r.categories[k]; c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memCategories) Get(_ context.Context, userID, id int) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return models.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (r memCategories) Create(_ context.Context, c models.Category) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	c.ID = r.id()
	r.categories[c.ID] = c
	return c.ID, nil
}

func (r memCategories) Update(_ context.Context, c models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.categories[c.ID]
	if !ok || old.UserID != c.UserID {
		return repository.ErrNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r memCategories) Delete(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// ---- subcategories ----

type memSubcategories struct{ *memStore }

func (r memSubcategories) List(_ context.Context, userID, categoryID int) ([]models.Subcategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Subcategory{}
	for _, k := range sortedKeys(r.subcategories) {
		if s := r.subcategories[k]; s.UserID == userID && s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r memSubcategories) Get(_ context.Context, userID, categoryID, id int) (models.Subcategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subcategories[id]
	if !ok || s.UserID != userID || s.CategoryID != categoryID {
		return models.Subcategory{}, repository.ErrNotFound
	}
	return s, nil
}

func (r memSubcategories) Create(_ context.Context, s models.Subcategory) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	r.subcategories[s.ID] = s
	return s.ID, nil
}

func (r memSubcategories) Update(_ context.Context, s models.Subcategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.subcategories[s.ID]
	if !ok || old.UserID != s.UserID || old.CategoryID != s.CategoryID {
		return repository.ErrNotFound
	}
	r.subcategories[s.ID] = s
	return nil
}

func (r memSubcategories) Delete(_ context.Context, userID, categoryID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subcategories[id]
	if !ok || s.UserID != userID || s.CategoryID != categoryID {
		return repository.ErrNotFound
	}
	delete(r.subcategories, id)
	return nil
}

// ---- labels ----

type memLabels struct{ *memStore }

func (r memLabels) List(_ context.Context, userID int) ([]models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Label{}
	for _, k := range sortedKeys(r.labels) {
		if l := r.labels[k]; l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memLabels) Get(_ context.Context, userID, id int) (models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.labels[id]
	if !ok || l.UserID != userID {
		return models.Label{}, repository.ErrNotFound
	}
	return l, nil
}

func (r memLabels) Create(_ context.Context, l models.Label) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.id()
	r.labels[l.ID] = l
	return l.ID, nil
}

func (r memLabels) Update(_ context.Context, l models.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.labels[l.ID]
	if !ok || old.UserID != l.UserID {
		return repository.ErrNotFound
	}
	r.labels[l.ID] = l
	return nil
}

func (r memLabels) Delete(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.labels[id]
	if !ok || l.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.labels, id)
	return nil
}

// ---- entries ----

type memEntries struct{ *memStore }

func (r memEntries) List(_ context.Context, userID, subcategoryID int) ([]models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Entry{}
	for _, k := range sortedKeys(r.entries) {
		if e := r.entries[k]; e.UserID == userID && e.SubcategoryID == subcategoryID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memEntries) Get(_ context.Context, userID, subcategoryID, id int) (models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID || e.SubcategoryID != subcategoryID {
		return models.Entry{}, repository.ErrNotFound
	}
	return e, nil
}

func (r memEntries) GetByID(_ context.Context, userID, id int) (models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return models.Entry{}, repository.ErrNotFound
	}
	return e, nil
}

func (r memEntries) Create(_ context.Context, e models.Entry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id()
	r.entries[e.ID] = e
	return e.ID, nil
}

func (r memEntries) Update(_ context.Context, e models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.entries[e.ID]
	if !ok || old.UserID != e.UserID || old.SubcategoryID != e.SubcategoryID {
		return repository.ErrNotFound
	}
	r.entries[e.ID] = e
	return nil
}

func (r memEntries) Delete(_ context.Context, userID, subcategoryID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID || e.SubcategoryID != subcategoryID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r memEntries) Amounts(_ context.Context, userID int, from, to time.Time) ([]models.AmountRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AmountRow{}
	for _, k := range sortedKeys(r.entries) {
		e := r.entries[k]
		if e.UserID != userID {
			continue
		}
		if !from.IsZero() && e.TransactionTime.Before(from) {
			continue
		}
		if !to.IsZero() && e.TransactionTime.After(to) {
			continue
		}
		out = append(out, models.AmountRow{CategoryID: r.subcategories[e.SubcategoryID].CategoryID, Amount: e.Amount})
	}
	return out, nil
}

// ---- entry labels ----

type memEntryLabels struct{ *memStore }

func (r memEntryLabels) Attach(_ context.Context, el models.EntryLabel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int{el.EntryID, el.LabelID}
	if _, ok := r.links[key]; ok {
		return repository.ErrDuplicate
	}
	r.links[key] = el
	return nil
}

func (r memEntryLabels) Detach(_ context.Context, el models.EntryLabel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int{el.EntryID, el.LabelID}
	if link, ok := r.links[key]; !ok || link.UserID != el.UserID {
		return repository.ErrNotFound
	}
	delete(r.links, key)
	return nil
}

func (r memEntryLabels) ListLabels(_ context.Context, userID, entryID int) ([]models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Label{}
	for _, k := range sortedKeys(r.labels) {
		if link, ok := r.links[[2]int{entryID, k}]; ok && link.UserID == userID {
			out = append(out, r.labels[k])
		}
	}
	return out, nil
}

func (m *memStore) repository(events repository.Events) *repository.Repository {
	return &repository.Repository{
		Users:         memUsers{m},
		Colours:       memColours{m},
		Categories:    memCategories{m},
		Subcategories: memSubcategories{m},
		Labels:        memLabels{m},
		Entries:       memEntries{m},
		EntryLabels:   memEntryLabels{m},
		Events:        events,
	}
}
