//go:build unit

package schedule_test

import (
	"math/rand"
	"testing"
	"time"

	"salon-booking/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupied(start, end string, cancelled bool) schedule.Occupied {
	return schedule.Occupied{
		AppointmentID: uuid.New(),
		Slot:          schedule.Slot{Start: tod(start), End: tod(end)},
		Cancelled:     cancelled,
	}
}

func TestSlotOverlaps(t *testing.T) {
	base := schedule.Slot{Start: tod("10:00"), End: tod("11:00")}
	cases := []struct {
		name  string
		other schedule.Slot
		want  bool
	}{
		{name: "直前で接する", other: schedule.Slot{Start: tod("09:00"), End: tod("10:00")}, want: false},
		{name: "直後で接する", other: schedule.Slot{Start: tod("11:00"), End: tod("12:00")}, want: false},
		{name: "前半が重なる", other: schedule.Slot{Start: tod("09:30"), End: tod("10:30")}, want: true},
		{name: "内包される", other: schedule.Slot{Start: tod("10:15"), End: tod("10:45")}, want: true},
		{name: "内包する", other: schedule.Slot{Start: tod("09:00"), End: tod("12:00")}, want: true},
		{name: "同一", other: base, want: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, base.Overlaps(c.other))
			assert.Equal(t, c.want, c.other.Overlaps(base))
		})
	}
}

func TestPartition(t *testing.T) {
	t.Run("9時から10時の予約で2枠が埋まる", func(t *testing.T) {
		w := window(t, "09:00", "17:00", true)
		candidates := schedule.GenerateSlots(w, 30*time.Minute)

		free, booked := schedule.Partition(candidates, []schedule.Occupied{occupied("09:00", "10:00", false)})

		require.Len(t, free, 14)
		assert.Equal(t, "10:00:00", free[0].Start.String())
		require.Len(t, booked, 1)
		assert.Equal(t, "09:00:00", booked[0].Slot.Start.String())
	})

	t.Run("キャンセル済みは枠を塞がない", func(t *testing.T) {
		w := window(t, "09:00", "17:00", true)
		candidates := schedule.GenerateSlots(w, 30*time.Minute)

		free, booked := schedule.Partition(candidates, []schedule.Occupied{occupied("09:00", "10:00", true)})

		assert.Len(t, free, 16)
		assert.Empty(t, booked)
	})

	t.Run("予約者は表示名のみ", func(t *testing.T) {
		customerID := uuid.New()
		o := occupied("11:00", "11:30", false)
		o.BookedBy = &schedule.Occupant{CustomerID: customerID, DisplayName: "Asha"}

		_, booked := schedule.Partition(nil, []schedule.Occupied{o})

		want := []schedule.BookedSlot{{Slot: o.Slot, BookedBy: &schedule.Occupant{CustomerID: customerID, DisplayName: "Asha"}}}
		if diff := cmp.Diff(want, booked); diff != "" {
			t.Errorf("booked mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("空き枠は既存予約と重ならず元の順序を保つ", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		w := window(t, "08:00", "20:00", true)
		candidates := schedule.GenerateSlots(w, 20*time.Minute)

		for round := 0; round < 50; round++ {
			var occ []schedule.Occupied
			for i := 0; i < 6; i++ {
				start := tod("08:00") + schedule.TimeOfDay(rng.Intn(11*60))*60
				end := start + schedule.TimeOfDay(15+rng.Intn(90))*60
				occ = append(occ, schedule.Occupied{Slot: schedule.Slot{Start: start, End: end}, Cancelled: rng.Intn(4) == 0})
			}

			free, _ := schedule.Partition(candidates, occ)

			for i, f := range free {
				if i > 0 {
					assert.Less(t, free[i-1].Start, f.Start)
				}
				for _, o := range occ {
					if !o.Cancelled {
						assert.False(t, f.Overlaps(o.Slot))
					}
				}
				assert.True(t, schedule.IsFree(f, occ))
			}
		}
	})
}
