package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// In-memory repository fakes. Each mirrors the matching postgres
// repository's behavior closely enough for the use-case tests: ids are
// assigned sequentially, missing rows yield store.ErrNotFound, and the
// Exists scans honor excludeID.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (r *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]types.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id int) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Name == name && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCarRepo struct {
	mu     sync.Mutex
	nextID int
	cars   map[int]types.Car
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{nextID: 1, cars: map[int]types.Car{}}
}

func (r *fakeCarRepo) List(ctx context.Context) ([]types.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cars := make([]types.Car, 0, len(r.cars))
	for _, car := range r.cars {
		cars = append(cars, car)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars, nil
}

func (r *fakeCarRepo) Get(ctx context.Context, id int) (types.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	car, ok := r.cars[id]
	if !ok {
		return types.Car{}, store.ErrNotFound
	}
	return car, nil
}

func (r *fakeCarRepo) ExistsByPlate(ctx context.Context, plate string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, car := range r.cars {
		if car.PlateNumber == plate && car.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCarRepo) ExistsByVIN(ctx context.Context, vin string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, car := range r.cars {
		if car.VIN == vin && car.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCarRepo) Create(ctx context.Context, car types.Car) (types.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	car.ID = r.nextID
	r.nextID++
	r.cars[car.ID] = car
	return car, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, car types.Car) (types.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[car.ID]; !ok {
		return types.Car{}, store.ErrNotFound
	}
	r.cars[car.ID] = car
	return car, nil
}

func (r *fakeCarRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.cars, id)
	return nil
}

type fakeMechanicRepo struct {
	mu        sync.Mutex
	nextID    int
	mechanics map[int]types.Mechanic
}

func newFakeMechanicRepo() *fakeMechanicRepo {
	return &fakeMechanicRepo{nextID: 1, mechanics: map[int]types.Mechanic{}}
}

func (r *fakeMechanicRepo) List(ctx context.Context) ([]types.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mechanics := make([]types.Mechanic, 0, len(r.mechanics))
	for _, mechanic := range r.mechanics {
		mechanics = append(mechanics, mechanic)
	}
	sort.Slice(mechanics, func(i, j int) bool { return mechanics[i].ID < mechanics[j].ID })
	return mechanics, nil
}

func (r *fakeMechanicRepo) Get(ctx context.Context, id int) (types.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mechanic, ok := r.mechanics[id]
	if !ok {
		return types.Mechanic{}, store.ErrNotFound
	}
	return mechanic, nil
}

func (r *fakeMechanicRepo) ExistsByLogin(ctx context.Context, login string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mechanic := range r.mechanics {
		if mechanic.Login == login && mechanic.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMechanicRepo) Create(ctx context.Context, mechanic types.Mechanic) (types.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mechanic.ID = r.nextID
	r.nextID++
	r.mechanics[mechanic.ID] = mechanic
	return mechanic, nil
}

func (r *fakeMechanicRepo) Update(ctx context.Context, mechanic types.Mechanic) (types.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mechanics[mechanic.ID]; !ok {
		return types.Mechanic{}, store.ErrNotFound
	}
	r.mechanics[mechanic.ID] = mechanic
	return mechanic, nil
}

func (r *fakeMechanicRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mechanics[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.mechanics, id)
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	nextID   int
	services map[int]types.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{nextID: 1, services: map[int]types.Service{}}
}

func (r *fakeServiceRepo) List(ctx context.Context) ([]types.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	services := make([]types.Service, 0, len(r.services))
	for _, service := range r.services {
		services = append(services, service)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services, nil
}

func (r *fakeServiceRepo) Get(ctx context.Context, id int) (types.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[id]
	if !ok {
		return types.Service{}, store.ErrNotFound
	}
	return service, nil
}

func (r *fakeServiceRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, service := range r.services {
		if service.Name == name && service.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeServiceRepo) Create(ctx context.Context, service types.Service) (types.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service.ID = r.nextID
	r.nextID++
	r.services[service.ID] = service
	return service, nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, service types.Service) (types.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[service.ID]; !ok {
		return types.Service{}, store.ErrNotFound
	}
	r.services[service.ID] = service
	return service, nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	nextID    int
	documents map[int]types.Document
	createErr error
	updateErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{nextID: 1, documents: map[int]types.Document{}}
}

func (r *fakeDocumentRepo) List(ctx context.Context) ([]types.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	documents := make([]types.Document, 0, len(r.documents))
	for _, document := range r.documents {
		documents = append(documents, document)
	}
	sort.Slice(documents, func(i, j int) bool { return documents[i].ID < documents[j].ID })
	return documents, nil
}

func (r *fakeDocumentRepo) Get(ctx context.Context, id int) (types.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[id]
	if !ok {
		return types.Document{}, store.ErrNotFound
	}
	return document, nil
}

func (r *fakeDocumentRepo) ExistsByMechanicAndType(ctx context.Context, mechanicID int, docType string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, document := range r.documents {
		if document.MechanicID == mechanicID && document.Type == docType && document.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDocumentRepo) ExistsByFileKey(ctx context.Context, fileKey string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, document := range r.documents {
		if document.FileKey == fileKey && document.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document types.Document) (types.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return types.Document{}, r.createErr
	}
	document.ID = r.nextID
	r.nextID++
	r.documents[document.ID] = document
	return document, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document types.Document) (types.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return types.Document{}, r.updateErr
	}
	if _, ok := r.documents[document.ID]; !ok {
		return types.Document{}, store.ErrNotFound
	}
	r.documents[document.ID] = document
	return document, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.documents, id)
	return nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int
	appointments map[int]types.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1, appointments: map[int]types.Appointment{}}
}

func (r *fakeAppointmentRepo) List(ctx context.Context) ([]types.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointments := make([]types.Appointment, 0, len(r.appointments))
	for _, appointment := range r.appointments {
		appointments = append(appointments, appointment)
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].ID < appointments[j].ID })
	return appointments, nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id int) (types.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return types.Appointment{}, store.ErrNotFound
	}
	return appointment, nil
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment.ID = r.nextID
	r.nextID++
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[appointment.ID]; !ok {
		return types.Appointment{}, store.ErrNotFound
	}
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return store.ErrNotFound
	}
	appointment.Status = status
	r.appointments[id] = appointment
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

// fakeBlobStore keeps object bytes in memory with switchable failures
// for the saga paths.
type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (b *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *fakeBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteErr != nil {
		return b.deleteErr
	}
	delete(b.objects, key)
	return nil
}

func (b *fakeBlobStore) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok
}

// fakeNotifier records deliveries and signals each one on a channel so
// tests can wait for the confirmation goroutine.
type fakeNotifier struct {
	mu        sync.Mutex
	delivered []fakeDelivery
	err       error
	signal    chan struct{}
}

type fakeDelivery struct {
	to      string
	subject string
	body    string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{signal: make(chan struct{}, 8)}
}

func (n *fakeNotifier) Notify(ctx context.Context, to, subject, body string) error {
	n.mu.Lock()
	n.delivered = append(n.delivered, fakeDelivery{to: to, subject: subject, body: body})
	n.mu.Unlock()
	n.signal <- struct{}{}
	return n.err
}

func (n *fakeNotifier) last() (fakeDelivery, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.delivered) == 0 {
		return fakeDelivery{}, false
	}
	return n.delivered[len(n.delivered)-1], true
}
