package refresher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/qidlabs/flightcapacity/internal/cargo"
	"github.com/qidlabs/flightcapacity/internal/chart"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/internal/log"
	"github.com/qidlabs/flightcapacity/pkg/config"
)

func newTestController(fetcher cargo.Fetcher) (*Controller, *flightquery.Store) {
	store := flightquery.NewStore()
	var wg sync.WaitGroup
	ctrl := NewController(context.Background(), &wg, store, fetcher, config.RefreshData{}, log.GetSugaredLogger())
	ctrl.now = func() time.Time {
		return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	}
	return ctrl, store
}

func completeQuery() flightquery.FlightQuery {
	return flightquery.FlightQuery{
		Number:      "AB123",
		Date:        time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		Origin:      "DEL",
		Destination: "BOM",
	}
}

func TestRefreshIncompleteQuery(t *testing.T) {
	fetchCalled := false
	fetcher := cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
		fetchCalled = true
		return nil, nil
	})

	ctrl, _ := newTestController(fetcher)
	ctrl.Refresh()

	result := ctrl.Latest()
	if result.State != chart.StateWaiting {
		t.Errorf("state = %s, expected %s", result.State, chart.StateWaiting)
	}
	if fetchCalled {
		t.Error("an incomplete query must short-circuit before the fetch")
	}
}

func TestRefreshRendersChart(t *testing.T) {
	fetcher := cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
		return []cargo.Record{
			{FltNo: q.Number, Date: time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC), Weight: 1000, Volume: 100, Provenance: cargo.Actual},
			{FltNo: q.Number, Date: time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC), Weight: 1200, Volume: 120, Provenance: cargo.Predicted},
		}, nil
	})

	ctrl, store := newTestController(fetcher)
	store.Set(completeQuery())
	ctrl.Refresh()

	result := ctrl.Latest()
	if result.State != chart.StateOK {
		t.Fatalf("state = %s, expected %s (message: %s)", result.State, chart.StateOK, result.Message)
	}
	if len(result.Figure.Data) == 0 {
		t.Error("rendered figure should carry traces")
	}
}

func TestRefreshFetchError(t *testing.T) {
	fetcher := cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
		return nil, errors.New("connection refused")
	})

	ctrl, store := newTestController(fetcher)
	store.Set(completeQuery())
	ctrl.Refresh()

	result := ctrl.Latest()
	if result.State != chart.StateError {
		t.Fatalf("state = %s, expected %s", result.State, chart.StateError)
	}
	if result.Message != "connection refused" {
		t.Errorf("message = %q, expected the fetch error", result.Message)
	}
}

func TestRefreshEmptyResult(t *testing.T) {
	fetcher := cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
		return nil, nil
	})

	ctrl, store := newTestController(fetcher)
	store.Set(completeQuery())
	ctrl.Refresh()

	if result := ctrl.Latest(); result.State != chart.StateEmpty {
		t.Errorf("state = %s, expected %s", result.State, chart.StateEmpty)
	}
}

func TestRefreshReplacesResult(t *testing.T) {
	var fetchErr error
	fetcher := cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return []cargo.Record{
			{Date: time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC), Weight: 1000, Volume: 100, Provenance: cargo.Actual},
		}, nil
	})

	ctrl, store := newTestController(fetcher)
	store.Set(completeQuery())

	ctrl.Refresh()
	if result := ctrl.Latest(); result.State != chart.StateOK {
		t.Fatalf("first refresh: state = %s, expected %s", result.State, chart.StateOK)
	}

	fetchErr = errors.New("database went away")
	ctrl.Refresh()
	if result := ctrl.Latest(); result.State != chart.StateError {
		t.Fatalf("second refresh should replace the cached result, state = %s", result.State)
	}
}

func TestLatestConcurrentWithRefresh(t *testing.T) {
	fetcher := cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
		return []cargo.Record{
			{Date: time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC), Weight: 1000, Volume: 100, Provenance: cargo.Actual},
		}, nil
	})

	ctrl, store := newTestController(fetcher)
	store.Set(completeQuery())
	ctrl.Refresh()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ctrl.Refresh()
		}()
		go func() {
			defer wg.Done()
			result := ctrl.Latest()
			if result.State != chart.StateOK {
				t.Errorf("unexpected state %s", result.State)
			}
		}()
	}
	wg.Wait()
}
