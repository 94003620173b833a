package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

func TestMetadataResolverLocal(t *testing.T) {
	ctx := context.Background()
	counting := &countingStorage{inner: testStorage()}
	resolver := newMetadataResolver(counting)

	info, err := resolver.Local(ctx, 1984)
	require.NoError(t, err)
	assert.Equal(t, assetInfo{Name: "Tether USD", Decimals: 6}, info)

	_, err = resolver.Local(ctx, 1984)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.localFetches)

	// Missing entries are memoized too, placeholder included.
	info, err = resolver.Local(ctx, 7777)
	require.NoError(t, err)
	assert.Equal(t, assetInfo{Name: "Asset id: 7777"}, info)
	_, err = resolver.Local(ctx, 7777)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.localFetches)
}

func TestMetadataResolverForeign(t *testing.T) {
	ctx := context.Background()
	counting := &countingStorage{inner: testStorage()}
	resolver := newMetadataResolver(counting)
	glimmer := xcm.SiblingLocation(2004)

	info, err := resolver.Foreign(ctx, glimmer)
	require.NoError(t, err)
	assert.Equal(t, assetInfo{Name: "Glimmer", Decimals: 18}, info)

	_, err = resolver.Foreign(ctx, glimmer)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.foreignFetches)

	info, err = resolver.Foreign(ctx, xcm.SiblingLocation(3370))
	require.NoError(t, err)
	assert.Equal(t, assetInfo{Name: "Asset location: 1/Parachain(3370)"}, info)
}

func TestMetadataResolverStorageFailure(t *testing.T) {
	ctx := context.Background()
	resolver := newMetadataResolver(failingStorage{})

	_, err := resolver.Local(ctx, 1984)
	require.ErrorIs(t, err, errStorageDown)

	_, err = resolver.Foreign(ctx, xcm.SiblingLocation(2004))
	require.ErrorIs(t, err, errStorageDown)
	assert.False(t, isLocalError(err))
}
