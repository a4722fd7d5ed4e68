package dummy

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockClient(t *testing.T) {
	t.Run("replay then EOF", func(t *testing.T) {
		slices := [][]byte{
			[]byte("Hello"), []byte("world!"),
		}
		client := NewMockClient(slices...)

		for _, slice := range slices {
			got, err := client.Read()
			require.NoError(t, err)
			require.Equal(t, string(slice), string(got))
		}

		_, err := client.Read()
		require.EqualError(t, err, io.EOF.Error())
		require.Equal(t, 3, client.Reads())
	})

	t.Run("custom error", func(t *testing.T) {
		boom := errors.New("boom")
		client := NewMockClient([]byte("a")).FailWith(boom)
		_, err := client.Read()
		require.NoError(t, err)
		_, err = client.Read()
		require.ErrorIs(t, err, boom)
	})

	t.Run("journal", func(t *testing.T) {
		client := NewMockClient()
		_, err := client.Write([]byte("GET / "))
		require.NoError(t, err)
		_, err = client.Write([]byte("HTTP/1.1"))
		require.NoError(t, err)
		require.Equal(t, "GET / HTTP/1.1", client.Written())
	})

	t.Run("closed", func(t *testing.T) {
		client := NewMockClient([]byte("data"))
		require.NoError(t, client.Close())
		require.True(t, client.Closed())
		_, err := client.Read()
		require.ErrorIs(t, err, io.EOF)
	})
}

func TestSplit(t *testing.T) {
	require.Nil(t, Split(nil, 3))
	require.Equal(t, [][]byte{[]byte("abc"), []byte("de")}, Split([]byte("abcde"), 3))
	require.Equal(t, [][]byte{[]byte("ab")}, Split([]byte("ab"), 10))
}

func TestShortWriter(t *testing.T) {
	w := &ShortWriter{Limit: 3}
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "hel", string(w.Data))
}
