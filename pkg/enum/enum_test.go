package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToEnum(t *testing.T) {
	type Fruit string

	apple := New(Fruit("apple"))
	banana := New(Fruit("banana"))

	v, err := ToEnum[Fruit]("apple")
	require.NoError(t, err)
	require.Equal(t, apple, v)

	v, err = ToEnum[Fruit]("banana")
	require.NoError(t, err)
	require.Equal(t, banana, v)

	// Only registered members resolve.
	_, err = ToEnum[Fruit]("mango")
	require.Error(t, err)
}

func TestToEnumUnregisteredType(t *testing.T) {
	type Vegetable string

	_, err := ToEnum[Vegetable]("carrot")
	require.Error(t, err)
}
