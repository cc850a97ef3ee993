package intake

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/arkhive/arkhive-go/internal/client"
	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	f := DefaultForm("2030-07-01")
	f.Name = "John Doe"
	f.Email = "john@example.com"
	f.Phone = "+2348000000000"
	f.Guests = 200
	return f
}

func june(day int) time.Time {
	return time.Date(2024, 6, day, 10, 0, 0, 0, time.UTC)
}

func TestParseGuests(t *testing.T) {
	assert.Equal(t, 200, ParseGuests("200"))
	assert.Equal(t, 50, ParseGuests(" 50 "))
	assert.Equal(t, 0, ParseGuests("lots"))
	assert.Equal(t, 0, ParseGuests(""))
	assert.Equal(t, 0, ParseGuests("-3"))
}

func TestFromQuery(t *testing.T) {
	q, err := url.ParseQuery("date=2024-06-25")
	require.NoError(t, err)

	f := FromQuery(q)

	assert.Equal(t, "2024-06-25", f.Date)
	assert.Equal(t, domain.EventCorporate, f.EventType)
}

func TestSetEventTypeClearsCustomField(t *testing.T) {
	f := DefaultForm("")
	f.SetEventType(domain.EventOther)
	f.CustomEventType = "Pop-up Market"
	require.True(t, f.NeedsCustomType())

	f.SetEventType(domain.EventWedding)

	assert.False(t, f.NeedsCustomType())
	assert.Empty(t, f.CustomEventType)
}

func TestValidateOtherRequiresCustomType(t *testing.T) {
	f := validForm()
	f.SetEventType(domain.EventOther)
	f.Date = "2024-06-25"

	err := f.Validate(june(1))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customEventType", verr.Field)

	f.CustomEventType = "Pop-up Market"
	assert.NoError(t, f.Validate(june(1)))
}

func TestValidateFieldChecks(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"missing name", func(f *Form) { f.Name = " " }, "name"},
		{"bad email", func(f *Form) { f.Email = "not-an-email" }, "email"},
		{"missing phone", func(f *Form) { f.Phone = "" }, "phone"},
		{"unknown event type", func(f *Form) { f.EventType = "Concert" }, "eventType"},
		{"missing date", func(f *Form) { f.Date = "" }, "date"},
		{"malformed date", func(f *Form) { f.Date = "25/06/2024" }, "date"},
		{"past date", func(f *Form) { f.Date = "2024-05-31" }, "date"},
		{"zero guests", func(f *Form) { f.Guests = 0 }, "guests"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)

			err := f.Validate(june(1))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateAcceptsToday(t *testing.T) {
	f := validForm()
	f.Date = "2024-06-01"

	assert.NoError(t, f.Validate(june(1)))
}

// A wedding inquiry must produce a request with status pending and no
// customEventType.
func TestRequestPayloadShape(t *testing.T) {
	f := DefaultForm("2024-07-01")
	f.SetEventType(domain.EventWedding)
	f.Name = "John Doe"
	f.Email = "john@example.com"
	f.Phone = "+2348000000000"
	f.Guests = ParseGuests("200")

	b := f.Request()

	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.EventWedding, b.EventType)
	assert.Equal(t, "2024-07-01", b.Date)
	assert.Equal(t, 200, b.Guests)
	assert.Empty(t, b.CustomEventType)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "customEventType")
}

func TestSubmitMakesExactlyOneCreateCall(t *testing.T) {
	var calls int
	var got domain.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/booking/create_booking", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		got.ID = "bk-1"
		json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	f := validForm()
	created, err := f.Submit(context.Background(), client.New(client.Config{BaseURL: srv.URL}))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bk-1", created.ID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, f.Submitted())
}

type failingSubmitter struct{}

func (failingSubmitter) CreateBooking(ctx context.Context, b domain.BookingRequest) (*domain.BookingRequest, error) {
	return nil, errors.New("connection refused")
}

// A failed create must not flip the form into the acknowledgment view.
func TestSubmitFailureIsSurfaced(t *testing.T) {
	f := validForm()

	_, err := f.Submit(context.Background(), failingSubmitter{})

	require.Error(t, err)
	assert.False(t, f.Submitted())
}

func TestSubmitInvalidFormSkipsNetwork(t *testing.T) {
	f := validForm()
	f.Guests = 0

	_, err := f.Submit(context.Background(), failingSubmitter{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestReset(t *testing.T) {
	f := validForm()
	f.submitted = true

	f.Reset()

	assert.False(t, f.Submitted())
	assert.Empty(t, f.Name)
	assert.Equal(t, domain.EventCorporate, f.EventType)
}
