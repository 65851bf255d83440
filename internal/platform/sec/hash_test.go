// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

/*
TestBcryptHasher_HashAndVerify verifies the basic hash/verify contract.
*/
func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := sec.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, hasher.Verify("s3cret!", hash))
	assert.False(t, hasher.Verify("S3cret!", hash))
	assert.False(t, hasher.Verify("", hash))
}

/*
TestBcryptHasher_SaltedPerCall verifies two hashes of the same input differ
but both verify.
*/
func TestBcryptHasher_SaltedPerCall(t *testing.T) {
	hasher := sec.NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}

/*
TestBcryptHasher_MalformedHash verifies a broken hash is a plain mismatch.
*/
func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := sec.NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("anything", ""))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	hasher := sec.NewBcryptHasher(99)

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
