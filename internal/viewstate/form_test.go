package viewstate

import (
	"context"
	"errors"
	"strings"
	"testing"

	ierr "go-smartshop/internal/errors"
	"go-smartshop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFormRepo struct {
	added   []model.Product
	updated []model.Product
	err     error
	stored  map[string]model.Product
}

func (r *fakeFormRepo) AddProduct(_ context.Context, p model.Product) error {
	r.added = append(r.added, p)
	return r.err
}

func (r *fakeFormRepo) UpdateProduct(_ context.Context, p model.Product) error {
	r.updated = append(r.updated, p)
	return r.err
}

func (r *fakeFormRepo) GetProductById(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.stored[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &p, nil
}

func fill(f *Form, name, quantity, price string) {
	f.SetName(name)
	f.SetQuantity(quantity)
	f.SetPrice(price)
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		quantity string
		price    string
		wantErr  string
	}{
		{name: "empty name", product: "", quantity: "1", price: "1", wantErr: "Product name required"},
		{name: "blank name", product: "   ", quantity: "1", price: "1", wantErr: "Product name required"},
		{name: "empty quantity", product: "Pen", quantity: "", price: "1", wantErr: "Quantity required"},
		{name: "empty price", product: "Pen", quantity: "1", price: " ", wantErr: "Price required"},
		{name: "blank checks come first", product: "Pen", quantity: "abc", price: "", wantErr: "Price required"},
		{name: "non numeric quantity", product: "Pen", quantity: "ten", price: "1", wantErr: "Quantity must be a non-negative integer"},
		{name: "negative quantity", product: "Pen", quantity: "-1", price: "1", wantErr: "Quantity must be a non-negative integer"},
		{name: "fractional quantity", product: "Pen", quantity: "1.5", price: "1", wantErr: "Quantity must be a non-negative integer"},
		{name: "non numeric price", product: "Pen", quantity: "1", price: "cheap", wantErr: "Price must be > 0"},
		{name: "zero price", product: "Pen", quantity: "1", price: "0", wantErr: "Price must be > 0"},
		{name: "negative price", product: "Pen", quantity: "1", price: "-2.5", wantErr: "Price must be > 0"},
		{name: "too much stock", product: "Pen", quantity: "1000000", price: "1", wantErr: "Quantity must be at most 999999"},
		{name: "long name", product: strings.Repeat("a", 101), quantity: "1", price: "1", wantErr: "Product name must be at most 100 characters"},
		{name: "boundary values", product: "Pen", quantity: "0", price: "0.01"},
		{name: "padded numbers", product: "Pen", quantity: " 7 ", price: " 2.50 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateForm(tt.product, tt.quantity, tt.price)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantErr, vErr.Message)
		})
	}
}

func TestValidateFormParses(t *testing.T) {
	in, err := validateForm("Pen", "0", "0.01")
	require.NoError(t, err)
	assert.Equal(t, 0, in.Quantity)
	assert.True(t, in.Price.Equal(decimal.RequireFromString("0.01")))
}

func TestFormValidationFailureStaysEditing(t *testing.T) {
	repo := &fakeFormRepo{}
	f := NewForm(repo)
	f.StartNew()
	fill(f, "", "1", "1")

	err := f.Submit(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	s := f.State()
	assert.Equal(t, FormEditing, s.Phase)
	assert.Equal(t, "Product name required", s.Error)
	assert.Empty(t, repo.added)

	// editing a field clears the message
	f.SetName("Pen")
	assert.Empty(t, f.State().Error)
}

func TestFormAddSuccess(t *testing.T) {
	repo := &fakeFormRepo{}
	f := NewForm(repo)
	f.StartNew()
	firstId := f.State().Id
	fill(f, "Pen", "10", "1.50")

	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, repo.added, 1)
	added := repo.added[0]
	assert.Equal(t, firstId, added.Id)
	assert.Equal(t, "Pen", added.Name)
	assert.Equal(t, 10, added.Quantity)
	assert.True(t, added.Price.Equal(decimal.RequireFromString("1.5")))

	s := f.State()
	assert.Equal(t, FormSuccess, s.Phase)
	assert.Empty(t, s.Name)
	assert.Empty(t, s.Quantity)
	assert.Empty(t, s.Price)
	assert.NotEqual(t, firstId, s.Id, "a fresh id is prepared for the next add")
	assert.False(t, s.EditMode)
}

func TestFormRepositoryErrorReturnsToEditing(t *testing.T) {
	repo := &fakeFormRepo{err: errors.New("store unavailable")}
	f := NewForm(repo)
	f.StartNew()
	fill(f, "Pen", "1", "1")

	require.Error(t, f.Submit(context.Background()))

	s := f.State()
	assert.Equal(t, FormEditing, s.Phase)
	assert.Equal(t, "store unavailable", s.Error)
	assert.Equal(t, "Pen", s.Name, "fields survive a failed submit")
}

func TestFormEditFlow(t *testing.T) {
	repo := &fakeFormRepo{stored: map[string]model.Product{
		"pen": {Id: "pen", Name: "Pen", Quantity: 3, Price: decimal.RequireFromString("1.25")},
	}}
	f := NewForm(repo)

	require.ErrorIs(t, f.LoadForEdit(context.Background(), "missing"), ierr.NotFound)
	assert.Equal(t, FormIdle, f.State().Phase)

	require.NoError(t, f.LoadForEdit(context.Background(), "pen"))
	s := f.State()
	assert.Equal(t, FormEditing, s.Phase)
	assert.True(t, s.EditMode)
	assert.Equal(t, "3", s.Quantity)
	assert.Equal(t, "1.25", s.Price)

	f.SetQuantity("8")
	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, repo.updated, 1)
	assert.Empty(t, repo.added)
	assert.Equal(t, "pen", repo.updated[0].Id)
	assert.Equal(t, 8, repo.updated[0].Quantity)

	s = f.State()
	assert.Equal(t, FormSuccess, s.Phase)
	assert.False(t, s.EditMode)
}

func TestFormRejectsConcurrentSubmit(t *testing.T) {
	f := NewForm(&fakeFormRepo{})
	f.state.update(func(s FormState) FormState {
		s.Phase = FormSubmitting
		return s
	})

	require.ErrorIs(t, f.Submit(context.Background()), ErrSubmitInProgress)

	f.SetName("ignored while submitting")
	assert.Empty(t, f.State().Name)
}

func TestFormReset(t *testing.T) {
	f := NewForm(&fakeFormRepo{})
	f.StartNew()
	fill(f, "Pen", "1", "x")
	before := f.State().Id

	f.Reset()
	s := f.State()
	assert.Equal(t, FormIdle, s.Phase)
	assert.Empty(t, s.Name)
	assert.NotEqual(t, before, s.Id)
}

func TestFormWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewForm(&fakeFormRepo{})
	ch := f.Watch(ctx)
	assert.Equal(t, FormIdle, (<-ch).Phase)

	f.StartNew()
	assert.Equal(t, FormEditing, (<-ch).Phase)
}

func TestFormPhaseString(t *testing.T) {
	assert.Equal(t, "submitting", FormSubmitting.String())
	assert.Equal(t, "unknown", FormPhase(9).String())
}
