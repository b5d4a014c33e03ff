package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel with the same code", func(t *testing.T) {
		err := InvalidInput("quotas must be positive")
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("%w: users.email", ErrAlreadyExists)
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Email  string  `json:"email" validate:"required,email"`
		Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	t.Run("valid struct yields no error", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(sample{Email: "a@b.co"}).ErrOrNil())
	})

	t.Run("reports json field names", func(t *testing.T) {
		bad := "cancelled"
		err := ValidateStruct(sample{Status: &bad}).ErrOrNil()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		fields := map[string]string{}
		for _, f := range verr.Fields {
			fields[f.Field] = f.Message
		}
		assert.Equal(t, "This field is required", fields["email"])
		assert.Equal(t, "Must be one of: active inactive", fields["status"])
	})
}

func TestFilter(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, 20, f.Limit())

	f.Page = 3
	f.PageSize = 10
	assert.Equal(t, 20, f.Offset())

	f.PageSize = 10000
	assert.Equal(t, 500, f.Limit())

	assert.Equal(t, 3, f.PageNumber())
	assert.Equal(t, 1, Filter{}.PageNumber())
	assert.Equal(t, 1, Filter{Page: -4}.PageNumber())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(21), p.Total)
}
