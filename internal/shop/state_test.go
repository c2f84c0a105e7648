package shop

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testCatalog = []model.Item{
	{ID: 1, Name: "Margherita", Toppings: []string{"cheese"}, URL: "x"},
	{ID: 2, Name: "Funghi", Toppings: []string{"cheese", "mushroom"}, URL: "y"},
	{ID: 3, Name: "Marinara", Toppings: []string{"garlic"}, URL: "z"},
}

func loaded() State {
	return New().StartLoading().CatalogFetched(testCatalog, nil)
}

func TestNew(t *testing.T) {
	s := New()
	assert.Empty(t, s.Catalog)
	assert.False(t, s.Loading)
	assert.Nil(t, s.Selected)
	assert.Nil(t, s.Order)
	assert.False(t, s.Sending())
}

func TestCatalogFetched(t *testing.T) {
	t.Run("success replaces catalog wholesale", func(t *testing.T) {
		s := New().StartLoading()
		require.True(t, s.Loading)

		s = s.CatalogFetched(testCatalog, nil)
		assert.False(t, s.Loading)
		assert.Equal(t, testCatalog, s.Catalog)

		s = s.StartLoading().CatalogFetched(testCatalog[2:], nil)
		assert.Equal(t, testCatalog[2:], s.Catalog)
	})

	t.Run("validation failure empties catalog", func(t *testing.T) {
		invalid := fmt.Errorf("%w: item 0: id: missing", schema.ErrInvalidCatalog)
		s := loaded().StartLoading().CatalogFetched(nil, invalid)
		assert.False(t, s.Loading)
		assert.Empty(t, s.Catalog)
		assert.NoError(t, s.FetchErr)
	})

	t.Run("transport failure keeps catalog and records error", func(t *testing.T) {
		boom := errors.New("connection refused")
		s := loaded().StartLoading().CatalogFetched(nil, boom)
		assert.False(t, s.Loading)
		assert.Equal(t, testCatalog, s.Catalog)
		assert.ErrorIs(t, s.FetchErr, boom)
	})
}

func TestSelectItem(t *testing.T) {
	s := loaded().SelectItem(2)
	require.NotNil(t, s.Selected)
	assert.Equal(t, testCatalog[1], *s.Selected)

	s = s.SelectItem(42)
	assert.Nil(t, s.Selected)
}

func TestUpdateAmountAcceptsAnyValue(t *testing.T) {
	for _, n := range []int{3, 0, -4} {
		assert.Equal(t, n, loaded().UpdateAmount(n).Amount)
	}
}

func TestAddSelectedToOrder(t *testing.T) {
	t.Run("requires a selection", func(t *testing.T) {
		s := loaded()
		next, err := s.AddSelectedToOrder()
		assert.ErrorIs(t, err, ErrNoSelection)
		assert.Nil(t, next.Order)
	})

	t.Run("first add creates order with empty contact details", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(2).AddSelectedToOrder()
		require.NoError(t, err)
		want := model.Order{Items: []model.OrderLine{{ItemID: 1, Amount: 2}}}
		if diff := cmp.Diff(want, *s.Order); diff != "" {
			t.Fatalf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("same id twice keeps one line with latest amount", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(2).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.UpdateAmount(5).AddSelectedToOrder()
		require.NoError(t, err)
		assert.Equal(t, []model.OrderLine{{ItemID: 1, Amount: 5}}, s.Order.Items)
	})

	t.Run("updated line moves to the end", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(1).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.SelectItem(2).UpdateAmount(2).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.SelectItem(1).UpdateAmount(3).AddSelectedToOrder()
		require.NoError(t, err)

		want := []model.OrderLine{{ItemID: 2, Amount: 2}, {ItemID: 1, Amount: 3}}
		if diff := cmp.Diff(want, s.Order.Items); diff != "" {
			t.Fatalf("lines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("contact details survive an add", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(1).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.CaptureContactDetails(InputMap{element.Name: "Ada", element.Zip: "1010"})
		require.NoError(t, err)
		s, err = s.SelectItem(3).AddSelectedToOrder()
		require.NoError(t, err)
		assert.Equal(t, "Ada", s.Order.Name)
		assert.Equal(t, "1010", s.Order.ZipCode)
	})
}

func TestRemoveLine(t *testing.T) {
	t.Run("requires an order", func(t *testing.T) {
		_, err := loaded().RemoveLine(1)
		assert.ErrorIs(t, err, ErrNoOrder)
	})

	t.Run("removing the only line dissolves the order", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(2).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.CaptureContactDetails(InputMap{element.Name: "Ada"})
		require.NoError(t, err)

		s, err = s.RemoveLine(1)
		require.NoError(t, err)
		assert.Nil(t, s.Order)
	})

	t.Run("removing one of two keeps the other and the contact details", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(1).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.SelectItem(2).UpdateAmount(4).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.CaptureContactDetails(InputMap{element.Name: "Ada", element.Zip: "1010"})
		require.NoError(t, err)

		s, err = s.RemoveLine(1)
		require.NoError(t, err)
		want := model.Order{Name: "Ada", ZipCode: "1010", Items: []model.OrderLine{{ItemID: 2, Amount: 4}}}
		if diff := cmp.Diff(want, *s.Order); diff != "" {
			t.Fatalf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown id leaves lines as they were", func(t *testing.T) {
		s, err := loaded().SelectItem(1).UpdateAmount(1).AddSelectedToOrder()
		require.NoError(t, err)
		s, err = s.RemoveLine(99)
		require.NoError(t, err)
		assert.Equal(t, []model.OrderLine{{ItemID: 1, Amount: 1}}, s.Order.Items)
	})
}

func TestCaptureContactDetails(t *testing.T) {
	_, err := loaded().CaptureContactDetails(InputMap{})
	assert.ErrorIs(t, err, ErrNoOrder)

	s, err := loaded().SelectItem(1).AddSelectedToOrder()
	require.NoError(t, err)

	s, err = s.CaptureContactDetails(InputMap{element.Name: "Ada", element.Zip: "1010"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.Order.Name)
	assert.Equal(t, "1010", s.Order.ZipCode)

	// Absent inputs read as empty and overwrite earlier values.
	s, err = s.CaptureContactDetails(InputMap{element.Zip: "2020"})
	require.NoError(t, err)
	assert.Equal(t, "", s.Order.Name)
	assert.Equal(t, "2020", s.Order.ZipCode)

	s, err = s.CaptureContactDetails(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s.Order.ZipCode)
}

func TestOperationsDoNotAliasPreviousState(t *testing.T) {
	before, err := loaded().SelectItem(1).UpdateAmount(1).AddSelectedToOrder()
	require.NoError(t, err)
	before, err = before.SelectItem(2).UpdateAmount(2).AddSelectedToOrder()
	require.NoError(t, err)
	snapshot := before.Order.Clone()

	after, err := before.SelectItem(1).UpdateAmount(9).AddSelectedToOrder()
	require.NoError(t, err)
	after, err = after.RemoveLine(2)
	require.NoError(t, err)
	_, err = after.CaptureContactDetails(InputMap{element.Name: "Ada"})
	require.NoError(t, err)

	if diff := cmp.Diff(snapshot, *before.Order); diff != "" {
		t.Fatalf("earlier state changed (-want +got):\n%s", diff)
	}
}

func TestPrepareSubmit(t *testing.T) {
	_, _, err := loaded().PrepareSubmit(InputMap{})
	assert.ErrorIs(t, err, ErrNoOrder)

	s, err := loaded().SelectItem(3).UpdateAmount(2).AddSelectedToOrder()
	require.NoError(t, err)

	s, sent, err := s.PrepareSubmit(InputMap{element.Name: "Ada", element.Zip: "1010"})
	require.NoError(t, err)
	want := model.Order{Name: "Ada", ZipCode: "1010", Items: []model.OrderLine{{ItemID: 3, Amount: 2}}}
	if diff := cmp.Diff(want, sent); diff != "" {
		t.Fatalf("submitted order mismatch (-want +got):\n%s", diff)
	}
	// The cart is kept after a submit.
	require.NotNil(t, s.Order)
	assert.Equal(t, want, *s.Order)
}

func TestSubmitTracking(t *testing.T) {
	s := loaded().SubmitStarted().SubmitStarted()
	assert.True(t, s.Sending())
	assert.Equal(t, 2, s.InFlight)

	boom := errors.New("503")
	s = s.SubmitFinished(boom)
	assert.True(t, s.Sending())
	assert.ErrorIs(t, s.SendErr, boom)

	s = s.SubmitFinished(nil)
	assert.False(t, s.Sending())
	assert.NoError(t, s.SendErr)

	s = s.SubmitFinished(nil)
	assert.Equal(t, 0, s.InFlight)
}

func TestEndToEndCart(t *testing.T) {
	items, err := schema.ParseCatalog([]byte(`[{"id":1,"name":"Margherita","toppings":["cheese"],"url":"x"}]`))
	require.NoError(t, err)

	s := New().StartLoading().CatalogFetched(items, nil)
	s = s.SelectItem(1).UpdateAmount(2)
	s, err = s.AddSelectedToOrder()
	require.NoError(t, err)
	assert.Equal(t, []model.OrderLine{{ItemID: 1, Amount: 2}}, s.Order.Items)

	s, err = s.RemoveLine(1)
	require.NoError(t, err)
	assert.Nil(t, s.Order)
}

func TestErrorCodes(t *testing.T) {
	var e *Error
	_, err := loaded().AddSelectedToOrder()
	require.True(t, errors.As(err, &e))
	assert.Equal(t, StatusFailedPrecondition, e.Code)
	assert.Equal(t, "FAILED_PRECONDITION", e.Code.String())
	assert.False(t, errors.Is(err, ErrNoOrder))
}
