package viewstate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go-smartshop/internal/model"

	"github.com/google/uuid"
)

type FormPhase int

const (
	FormIdle FormPhase = iota
	FormEditing
	FormSubmitting
	FormSuccess
)

func (p FormPhase) String() string {
	switch p {
	case FormIdle:
		return "idle"
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var ErrSubmitInProgress = errors.New("submit already in progress")

// FormState keeps the raw text of every field as typed by the user.
type FormState struct {
	Id       string
	Name     string
	Quantity string
	Price    string
	Phase    FormPhase
	Error    string
	EditMode bool
}

type FormRepository interface {
	AddProduct(ctx context.Context, product model.Product) error
	UpdateProduct(ctx context.Context, product model.Product) error
	GetProductById(ctx context.Context, id string) (*model.Product, error)
}

// Form drives the add/edit product form:
// Idle -> Editing -> Submitting -> Success, or back to Editing with an error.
type Form struct {
	repo  FormRepository
	state *state[FormState]
}

func NewForm(repo FormRepository) *Form {
	return &Form{
		repo:  repo,
		state: newState(FormState{Id: uuid.NewString()}),
	}
}

func (f *Form) State() FormState {
	return f.state.get()
}

func (f *Form) Watch(ctx context.Context) <-chan FormState {
	return f.state.watch(ctx)
}

// StartNew opens an empty form for a new product.
func (f *Form) StartNew() {
	f.state.update(func(FormState) FormState {
		return FormState{Id: uuid.NewString(), Phase: FormEditing}
	})
}

// LoadForEdit fills the form from a stored product. The form is left
// untouched when the product cannot be loaded.
func (f *Form) LoadForEdit(ctx context.Context, id string) error {
	product, err := f.repo.GetProductById(ctx, id)
	if err != nil {
		return fmt.Errorf("load product for edit: %w, id: %s", err, id)
	}

	f.state.update(func(FormState) FormState {
		return FormState{
			Id:       product.Id,
			Name:     product.Name,
			Quantity: strconv.Itoa(product.Quantity),
			Price:    product.Price.String(),
			Phase:    FormEditing,
			EditMode: true,
		}
	})
	return nil
}

func (f *Form) SetName(name string) {
	f.edit(func(s *FormState) { s.Name = name })
}

func (f *Form) SetQuantity(quantity string) {
	f.edit(func(s *FormState) { s.Quantity = quantity })
}

func (f *Form) SetPrice(price string) {
	f.edit(func(s *FormState) { s.Price = price })
}

// Reset discards the form and prepares a fresh id.
func (f *Form) Reset() {
	f.state.update(func(FormState) FormState {
		return FormState{Id: uuid.NewString()}
	})
}

// Submit validates the fields and adds or updates the product. Validation
// failures return a *ValidationError without touching the repository.
func (f *Form) Submit(ctx context.Context) error {
	var (
		in       input
		err      error
		busy     bool
		snapshot FormState
	)

	f.state.update(func(s FormState) FormState {
		if s.Phase == FormSubmitting {
			busy = true
			return s
		}

		in, err = validateForm(s.Name, s.Quantity, s.Price)
		if err != nil {
			s.Phase = FormEditing
			s.Error = err.Error()
			return s
		}

		s.Phase = FormSubmitting
		s.Error = ""
		snapshot = s
		return s
	})

	if busy {
		return ErrSubmitInProgress
	}
	if err != nil {
		return err
	}

	product := model.Product{
		Id:       snapshot.Id,
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
	}

	if snapshot.EditMode {
		err = f.repo.UpdateProduct(ctx, product)
	} else {
		err = f.repo.AddProduct(ctx, product)
	}

	f.state.update(func(s FormState) FormState {
		if err != nil {
			s.Phase = FormEditing
			s.Error = err.Error()
			return s
		}
		return FormState{Id: uuid.NewString(), Phase: FormSuccess}
	})

	return err
}

func (f *Form) edit(fn func(*FormState)) {
	f.state.update(func(s FormState) FormState {
		if s.Phase == FormSubmitting {
			return s
		}
		fn(&s)
		s.Error = ""
		s.Phase = FormEditing
		return s
	})
}
