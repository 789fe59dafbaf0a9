package locale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countingStore fails the test if Get is called when it must not be.
type countingStore struct {
	MemoryStore
	gets int
}

func (c *countingStore) Get() (string, bool) {
	c.gets++
	return c.MemoryStore.Get()
}

func TestMountRouteLocaleSkipsStore(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryStore: *NewMemoryStore("zh-CN")}
	sel := NewSelection(store)

	got, ok := sel.Mount("es")
	require.True(t, ok)
	require.Equal(t, Spanish, got)
	require.Equal(t, Resolved, sel.State())

	// only the persistence check may read the store, never the resolution step
	require.LessOrEqual(t, store.gets, 1)
	v, _ := store.MemoryStore.Get()
	require.Equal(t, "es", v)
}

func TestMountFallsBackToPersistedAttribute(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("zh-CN")
	sel := NewSelection(store, WithFallback(English))

	got, ok := sel.Mount("")
	require.True(t, ok)
	require.Equal(t, ZhCN, got)
	require.Equal(t, 0, store.Writes(), "persisted value already matches")
}

func TestMountUnknownRouteUsesStore(t *testing.T) {
	t.Parallel()

	sel := NewSelection(NewMemoryStore("en"))
	got, ok := sel.Mount("fr")
	require.True(t, ok)
	require.Equal(t, English, got)
}

func TestMountWithoutSignalsUsesFallback(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("")
	sel := NewSelection(store, WithFallback(Spanish))

	got, ok := sel.Mount("")
	require.True(t, ok)
	require.Equal(t, Spanish, got)
	v, set := store.Get()
	require.True(t, set)
	require.Equal(t, "es", v)
}

func TestMountWithoutSignalsOrFallbackStaysUnselected(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("klingon")
	sel := NewSelection(store, WithFallback(Locale("fr")))

	_, ok := sel.Mount("")
	require.False(t, ok)
	require.Equal(t, Unselected, sel.State())
	require.Equal(t, 0, store.Writes())

	_, ok = NewSelection(nil).Mount("")
	require.False(t, ok)
}

func TestMountIsDeterministic(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		route, persisted string
	}{
		{"es", "zh-CN"},
		{"", "zh-CN"},
		{"", ""},
		{"fr", "en"},
	}
	for _, in := range inputs {
		var first Locale
		for i := 0; i < 5; i++ {
			sel := NewSelection(NewMemoryStore(in.persisted), WithFallback(ZhCN))
			got, ok := sel.Mount(in.route)
			require.True(t, ok)
			if i == 0 {
				first = got
				continue
			}
			require.Equal(t, first, got, "route=%q persisted=%q", in.route, in.persisted)
		}
	}
}

func TestSelectAlwaysWins(t *testing.T) {
	t.Parallel()

	for _, route := range []string{"", "es", "zh-CN", "fr"} {
		for _, persisted := range []string{"", "es", "en", "zh-CN"} {
			for _, pick := range Supported() {
				store := NewMemoryStore(persisted)
				sel := NewSelection(store, WithFallback(ZhCN))
				sel.Mount(route)

				require.True(t, sel.Select(pick))
				got, ok := sel.Current()
				require.True(t, ok)
				require.Equal(t, pick, got)
				v, _ := store.Get()
				require.Equal(t, string(pick), v)
			}
		}
	}
}

func TestSelectUnsupportedKeepsState(t *testing.T) {
	t.Parallel()

	sel := NewSelection(NewMemoryStore(""))
	sel.Mount("en")

	require.False(t, sel.Select(Locale("fr")))
	require.False(t, sel.SelectTag("de"))
	got, _ := sel.Current()
	require.Equal(t, English, got)

	require.True(t, sel.SelectTag("ES"))
	got, _ = sel.Current()
	require.Equal(t, Spanish, got)
}

func TestSelectSwitchesAndPersists(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("zh-CN")
	sel := NewSelection(store)
	got, _ := sel.Mount("")
	require.Equal(t, ZhCN, got)

	require.True(t, sel.Select(English))
	got, _ = sel.Current()
	require.Equal(t, English, got)
	v, _ := store.Get()
	require.Equal(t, "en", v)
}

func TestRepeatedSelectIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("")
	var seen []Locale
	sel := NewSelection(store, WithObserver(func(l Locale) { seen = append(seen, l) }))

	sel.Select(English)
	sel.Select(English)
	sel.Select(English)

	require.Equal(t, 1, store.Writes())
	require.Equal(t, []Locale{English}, seen)

	sel.Select(Spanish)
	require.Equal(t, 2, store.Writes())
	require.Equal(t, []Locale{English, Spanish}, seen)
}

func TestPersistedValueIsCanonicalised(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("zh-cn")
	sel := NewSelection(store)
	got, ok := sel.Mount("")
	require.True(t, ok)
	require.Equal(t, ZhCN, got)
	v, _ := store.Get()
	require.Equal(t, "zh-CN", v)
}

func TestUnmountResets(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("")
	sel := NewSelection(store)
	sel.Mount("es")
	sel.Unmount()

	_, ok := sel.Current()
	require.False(t, ok)
	require.Equal(t, Unselected, sel.State())
	v, _ := store.Get()
	require.Equal(t, "es", v, "unmount keeps the persisted attribute")

	// a fresh mount recovers from the persisted attribute
	got, ok := NewSelection(store).Mount("")
	require.True(t, ok)
	require.Equal(t, Spanish, got)
}
