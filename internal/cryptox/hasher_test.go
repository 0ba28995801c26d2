package cryptox

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the argon2 cases fast
var testArgon2Params = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32}

func testHashers() []Hasher {
	return []Hasher{
		NewArgon2idHasher(testArgon2Params),
		NewBcryptHasher(bcrypt.MinCost),
		SHA256Hasher{},
	}
}

func TestHashers_VerifyRoundTrip(t *testing.T) {
	salt := []byte("0123456789abcdef")

	for _, h := range testHashers() {
		t.Run(h.Name(), func(t *testing.T) {
			hash, err := h.Hash([]byte("secret1"), salt)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			assert.NotContains(t, string(hash), "secret1")

			ok, err := h.Verify([]byte("secret1"), salt, hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify([]byte(" secret1"), salt, hash)
			require.NoError(t, err)
			assert.False(t, ok, "whitespace is significant in passwords")
		})
	}
}

func TestArgon2id_DeterministicPerSalt(t *testing.T) {
	h := NewArgon2idHasher(testArgon2Params)

	a, err := h.Hash([]byte("pw"), []byte("salt-1"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("pw"), []byte("salt-1"))
	require.NoError(t, err)
	c, err := h.Hash([]byte("pw"), []byte("salt-2"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "different salts must give different digests")
	assert.Len(t, a, int(testArgon2Params.KeyLen))
}

func TestSHA256_EmptySaltIsPlainDigest(t *testing.T) {
	want := sha256.Sum256([]byte("secret1"))

	got, err := SHA256Hasher{}.Hash([]byte("secret1"), nil)
	require.NoError(t, err)
	assert.Equal(t, want[:], got)
}

func TestBcrypt_CorruptHashIsError(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Verify([]byte("pw"), nil, []byte("not-a-bcrypt-hash"))
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{NameArgon2id, NameBcrypt, NameSHA256} {
		h, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, h.Name())
	}

	_, err := Lookup("md5")
	require.ErrorIs(t, err, ErrUnknownHasher)
}
