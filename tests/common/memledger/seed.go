//go:build unit

package memledger

import (
	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"

	"github.com/google/uuid"
)

func (l *Ledger) addUser(name string, role user.Role) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New()
	email, _ := user.NewEmail(id.String()[:8] + "@example.com")
	l.st.users[id] = user.Reconstruct(id, name, email, role, "", 0, true, l.now())
	return id
}

func (l *Ledger) AddStaff(name string) uuid.UUID    { return l.addUser(name, user.RoleStaff) }
func (l *Ledger) AddCustomer(name string) uuid.UUID { return l.addUser(name, user.RoleCustomer) }
func (l *Ledger) AddAdmin(name string) uuid.UUID    { return l.addUser(name, user.RoleAdmin) }

func (l *Ledger) AddService(name string, durationMin int, priceMinor int64, active bool) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New()
	l.st.services[id] = catalog.ReconstructService(id, name, durationMin, priceMinor, active)
	return id
}

func (l *Ledger) Assign(staffID, serviceID uuid.UUID, durationOverride *int, priceOverride *int64, active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.st.assignments[assignmentKey{staffID, serviceID}] =
		catalog.ReconstructAssignment(staffID, serviceID, durationOverride, priceOverride, active)
}

// SetWindow accepts "HH:MM" times and panics on malformed fixtures.
func (l *Ledger) SetWindow(staffID uuid.UUID, day int, start, end string) {
	w, err := schedule.NewWeeklyAvailability(staffID, day, schedule.MustParseTimeOfDay(start), schedule.MustParseTimeOfDay(end), true)
	if err != nil {
		panic(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.st.windows[windowKey{staffID, w.Day()}] = w
}

// PutAppointment stores an appointment and its payment as is, bypassing every check.
func (l *Ledger) PutAppointment(a *appointment.Appointment, p *payment.Payment) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.st.appointments[a.ID()] = cloneAppointment(a)
	if p != nil {
		l.st.payments[p.ID()] = clonePayment(p)
	}
}
