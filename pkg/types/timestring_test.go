package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minutes", input: "10:61", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "garbage", input: "пол-десятого", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("bad").Minutes()
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:20"), got)

	got, err = TimeString("09:50").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:10"), got)

	// Переход через полночь запрещён
	_, err = TimeString("23:50").AddMinutes(20)
	require.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("00:10").AddMinutes(-20)
	require.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:20"))
	assert.False(t, TimeString("09:20").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("21:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:20"))
	assert.Equal(t, TimeString("10:20"), ts)

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:20:00"))
	assert.Equal(t, TimeString("10:20"), ts)

	require.NoError(t, ts.Scan([]byte("18:40")))
	assert.Equal(t, TimeString("18:40"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 11, 9, 40, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:40"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	require.ErrorIs(t, err, ErrInvalidTimeString)
}
