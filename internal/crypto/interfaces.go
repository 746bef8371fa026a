package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic primitive used to protect wallet
// secrets at rest. It knows nothing about files, the engine or HTTP.
//
// Scheme:
//
//	salt          = GenerateSalt()                   32 random bytes, stored in clear
//	key           = DeriveKey(password, salt)        PBKDF2-HMAC-SHA256, 100k iterations
//	nonce,tag,ct  = Seal(plaintext, key)             AES-256-GCM, 16-byte nonce and tag
//	plaintext     = Open(nonce, tag, ct, key)
type KeyChainService interface {
	// GenerateSalt returns SaltSize random bytes from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// DeriveKey stretches password with salt into a KeySize-byte key.
	// The function is deliberately slow; the key is never persisted.
	DeriveKey(password string, salt []byte) []byte

	// DeriveEngineKey derives the hex-encoded key the wallet engine uses to
	// encrypt its own wallet storage, from password and a hex salt.
	DeriveEngineKey(password, saltHex string) (string, error)

	// Seal encrypts plaintext with key under a fresh random nonce and
	// returns the nonce, the authentication tag and the ciphertext
	// separately.
	Seal(plaintext, key []byte) (nonce, tag, ciphertext []byte, err error)

	// Open verifies tag and decrypts ciphertext. No plaintext is returned
	// unless authentication succeeds.
	Open(nonce, tag, ciphertext, key []byte) ([]byte, error)
}
