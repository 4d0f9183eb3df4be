package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpError(t *testing.T) {
	t.Run("Kinds", func(t *testing.T) {
		assert.ErrorIs(t, Validation("crear_turno", "sin disponibilidad"), ErrValidation)
		assert.ErrorIs(t, NotFound("completar_turno", "turno no encontrado"), ErrNotFound)
		assert.ErrorIs(t, Storage("crear_turno", "error al crear turno", errors.New("disk")), ErrStorage)

		assert.NotErrorIs(t, Validation("x", "y"), ErrNotFound)
		assert.True(t, IsKind(NotFound("x", "y"), KindNotFound))
		assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	})

	t.Run("WrappedCause", func(t *testing.T) {
		cause := errors.New("database is locked")
		err := fmt.Errorf("outer: %w", Storage("update_turno", "error al actualizar turno", cause))

		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "outer: error al actualizar turno: database is locked", err.Error())
	})

	t.Run("Message", func(t *testing.T) {
		err := Storage("x", "error al eliminar cliente", errors.New("FOREIGN KEY constraint failed"))
		assert.Equal(t, "error al eliminar cliente", Message(err))
		assert.Equal(t, "plain", Message(errors.New("plain")))
		assert.Equal(t, "", Message(nil))
	})

	t.Run("NoMessage", func(t *testing.T) {
		err := &OpError{Op: "get_cliente", Kind: KindNotFound}
		assert.Equal(t, "get_cliente: not_found", err.Error())
	})
}
