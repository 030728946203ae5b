package national_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/national"
)

func candidates() []national.HireiCandidate {
	return []national.HireiCandidate{
		{Rank: 2, Name: "b", Result: national.Defeated, Votes: 300, Sekihairitsu: 60},
		{Rank: 1, Name: "a", Result: national.Elected},
		{Rank: 1, Name: "c", Result: national.ElectedByHirei, Votes: 450, Sekihairitsu: 90},
		{Rank: 3, Name: "d", Result: national.Defeated},
	}
}

func names(cs []national.HireiCandidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}

	return out
}

func TestSekihairitsu(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 90.0, national.Sekihairitsu(450, 500), 1e-9)
	assert.Zero(t, national.Sekihairitsu(450, 0))
}

func TestSortCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  national.SortKey
		asc  bool
		want []string
	}{
		{key: national.SortRank, asc: true, want: []string{"a", "c", "b", "d"}},
		{key: national.SortRank, asc: false, want: []string{"d", "b", "c", "a"}},
		{key: national.SortName, asc: true, want: []string{"a", "b", "c", "d"}},
		{key: national.SortSekihairitsu, asc: false, want: []string{"c", "b", "d", "a"}},
		{key: national.SortVotes, asc: true, want: []string{"a", "d", "b", "c"}},
		{key: national.SortResult, asc: true, want: []string{"a", "c", "b", "d"}},
		{key: "unknown", asc: true, want: []string{"b", "a", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, names(national.SortCandidates(candidates(), tt.key, tt.asc)))
		})
	}
}

func TestSortCandidates_DoesNotMutate(t *testing.T) {
	t.Parallel()

	in := candidates()
	_ = national.SortCandidates(in, national.SortName, false)

	assert.Equal(t, []string{"b", "a", "c", "d"}, names(in))
}

func blocks() []national.HireiBlock {
	return []national.HireiBlock{
		{Name: "東京", TotalSeats: 19, Parties: []national.HireiPartyBlock{
			{Party: "自民", Seats: 5, Votes: 1000},
			{Party: "立民", Seats: 5, Votes: 1200},
			{Party: "公明", Seats: 2, Votes: 400},
		}},
		{Name: "北海道", TotalSeats: 8, Parties: []national.HireiPartyBlock{
			{Party: "立民", Seats: 3},
			{Party: "れいわ", Seats: 1},
		}},
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	b, ok := national.FindBlock(blocks(), "東京")
	require.True(t, ok)

	p, ok := b.FindParty("公明")
	require.True(t, ok)
	assert.Equal(t, 2, p.Seats)

	_, ok = b.FindParty("維新")
	assert.False(t, ok)

	_, ok = national.FindBlock(blocks(), "九州")
	assert.False(t, ok)

	ranked := b.Ranked()
	assert.Equal(t, "立民", ranked[0].Party)
	assert.Equal(t, "自民", ranked[1].Party)

	assert.Equal(t, []string{"自民", "立民", "公明", "れいわ"}, national.HireiParties(blocks()))

	m := national.BlockSeatMatrix(blocks())
	require.Len(t, m, 2)
	assert.Equal(t, 3, m[1].Seats["立民"])
	assert.Zero(t, m[1].Seats["自民"])
}

func prefectures() []national.ShouPrefectureSummary {
	return []national.ShouPrefectureSummary{
		{Prefecture: "東京都", TotalDistricts: 30, PartyResults: []national.ShouPartyResult{
			{Party: "自民", Seats: 15, TotalVotes: 3000, VoteRate: 35},
			{Party: "立民", Seats: 10, TotalVotes: 2500, VoteRate: 30},
		}},
		{Prefecture: "鳥取県", TotalDistricts: 2, PartyResults: []national.ShouPartyResult{
			{Party: "自民", Seats: 2, TotalVotes: 200, VoteRate: 60},
		}},
		{Prefecture: "空県", TotalDistricts: 0},
	}
}

func TestNationalShouTotals(t *testing.T) {
	t.Parallel()

	got := national.NationalShouTotals(prefectures())
	require.Len(t, got, 2)
	assert.Equal(t, national.PartySeats{Party: "自民", Seats: 17, Votes: 3200}, got[0])
	assert.Equal(t, 32, national.TotalDistricts(prefectures()))
}

func TestPartyPerformance(t *testing.T) {
	t.Parallel()

	got := national.PartyPerformance(prefectures(), "立民")
	require.Len(t, got, 3)
	assert.Equal(t, "東京都", got[0].Prefecture)
	assert.InDelta(t, 33.33, got[0].WinRate, 0.01)
	assert.Zero(t, got[1].WinRate)
	assert.Zero(t, got[2].WinRate, "no districts means zero, not NaN")

	got = national.PartyPerformance(prefectures(), "自民")
	assert.Equal(t, "鳥取県", got[0].Prefecture)
	assert.InDelta(t, 100.0, got[0].WinRate, 1e-9)

	assert.Nil(t, national.PartyPerformance(prefectures(), ""))
}

func TestDistricts(t *testing.T) {
	t.Parallel()

	ds := []national.ShouDistrict{
		{Prefecture: "東京都", District: 4, Candidates: []national.ShouCandidate{
			{Name: "x", Result: national.Defeated},
			{Name: "y", Result: national.Elected},
		}},
		{Prefecture: "東京都", District: 1},
		{Prefecture: "大阪府", District: 1},
	}

	tokyo := national.DistrictsOf(ds, "東京都")
	require.Len(t, tokyo, 2)
	assert.Equal(t, 1, tokyo[0].District)

	w, ok := tokyo[1].Winner()
	require.True(t, ok)
	assert.Equal(t, "y", w.Name)

	_, ok = tokyo[0].Winner()
	assert.False(t, ok)

	assert.True(t, national.ElectedByHirei.Won())
	assert.False(t, national.Defeated.Won())
}
