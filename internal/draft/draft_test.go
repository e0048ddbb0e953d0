package draft

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/wedplan/internal/domain"
)

func TestNewStartsWithOneBlankService(t *testing.T) {
	d := New()
	require.Equal(t, []string{""}, d.Services)
	require.Equal(t, domain.CategoryPhotography, d.Category)
}

func TestFinalizeDropsBlankServices(t *testing.T) {
	d := New()
	d.Services = []string{"Catering", "", "  "}

	rec, err := Normalizer{}.Finalize(d)
	require.NoError(t, err)
	require.Equal(t, []string{"Catering"}, rec.Services)
	require.Equal(t, []string{"Catering", "", "  "}, d.Services, "draft must not change")
}

func TestFinalizeCoercesPrices(t *testing.T) {
	tests := []struct {
		min, max string
		want     domain.PriceRange
	}{
		{"abc", "500", domain.PriceRange{Min: 0, Max: 500}},
		{"", "", domain.PriceRange{}},
		{" 75000 ", "300000", domain.PriceRange{Min: 75000, Max: 300000}},
		{"800.50", "2500rs", domain.PriceRange{Min: 800, Max: 2500}},
		{"900", "100", domain.PriceRange{Min: 900, Max: 100}},
	}
	for _, tt := range tests {
		d := New()
		d.PriceMin, d.PriceMax = tt.min, tt.max
		rec, err := Normalizer{}.Finalize(d)
		require.NoError(t, err)
		require.Equal(t, tt.want, rec.PricingRange, "min=%q max=%q", tt.min, tt.max)
	}
}

func TestFinalizeZeroServices(t *testing.T) {
	d := New()

	rec, err := Normalizer{}.Finalize(d)
	require.NoError(t, err)
	require.NotNil(t, rec.Services)
	require.Empty(t, rec.Services)

	_, err = Normalizer{RequireServices: true}.Finalize(d)
	require.ErrorIs(t, err, ErrNoServices)
}

func TestServiceRowEditing(t *testing.T) {
	d := New()
	d = UpdateService(d, 0, "Floral Decoration")
	d = AddService(d)
	d = UpdateService(d, 1, "Stage Design")
	d = AddService(d)
	require.Equal(t, []string{"Floral Decoration", "Stage Design", ""}, d.Services)

	before := d
	d = RemoveService(d, 0)
	require.Equal(t, []string{"Stage Design", ""}, d.Services)
	require.Equal(t, []string{"Floral Decoration", "Stage Design", ""}, before.Services)

	require.Equal(t, d, UpdateService(d, 5, "x"))
	require.Equal(t, d, RemoveService(d, -1))
}

func TestUpdateField(t *testing.T) {
	d := New()
	d, err := UpdateField(d, FieldBusinessName, "Royal Feast Catering")
	require.NoError(t, err)
	d, err = UpdateField(d, FieldCategory, "catering")
	require.NoError(t, err)
	d, err = UpdateField(d, FieldPriceMin, "800")
	require.NoError(t, err)

	require.Equal(t, "Royal Feast Catering", d.Value(FieldBusinessName))
	require.Equal(t, domain.CategoryCatering, d.Category)
	require.Equal(t, "800", d.Value(FieldPriceMin))

	same, err := UpdateField(d, FieldCategory, "Florist")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
	require.Equal(t, d, same)

	_, err = UpdateField(d, Field("website"), "x")
	require.ErrorIs(t, err, ErrUnknownField)
}

type fakeRegistrar struct {
	got domain.VendorRecord
	err error
}

func (f *fakeRegistrar) RegisterVendor(ctx context.Context, rec domain.VendorRecord) (domain.Vendor, error) {
	f.got = rec
	if f.err != nil {
		return domain.Vendor{}, f.err
	}
	return domain.Vendor{ID: "v-new", BusinessName: rec.BusinessName, Category: rec.Category}, nil
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestSubmitSuccessResetsDraft(t *testing.T) {
	d := New()
	d.BusinessName = "Elegant Event Decorators"
	d.Services = []string{"Theme Decoration", " "}
	d.PriceMax = "300000"

	r := &fakeRegistrar{}
	next, out := Submit(context.Background(), r, Normalizer{}, d, discard())
	require.True(t, out.OK)
	require.Equal(t, NoticeRegistered, out.Notice)
	require.Equal(t, "v-new", out.Vendor.ID)
	require.Equal(t, []string{"Theme Decoration"}, r.got.Services)
	require.Equal(t, New(), next)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	d := New()
	d.BusinessName = "Grand Palace"

	next, out := Submit(context.Background(), &fakeRegistrar{err: errors.New("422")}, Normalizer{}, d, discard())
	require.False(t, out.OK)
	require.Equal(t, NoticeRegisterErr, out.Notice)
	require.Equal(t, d, next)

	r := &fakeRegistrar{}
	next, out = Submit(context.Background(), r, Normalizer{RequireServices: true}, d, discard())
	require.ErrorIs(t, out.Err, ErrNoServices)
	require.Equal(t, d, next)
	require.Empty(t, r.got.BusinessName, "strict rejection must not reach the backend")
}
