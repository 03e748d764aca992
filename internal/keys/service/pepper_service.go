package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	apperrors "github.com/odiadev/keygate/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// pepperService implements PepperService using gocloud.dev/secrets.
type pepperService struct {
	plainPepper      string
	pepperCiphertext string
	kmsKeyURI        string
}

// NewPepperService creates a PepperService. When pepperCiphertext and
// kmsKeyURI are both set the pepper is decrypted through the configured KMS
// provider; otherwise plainPepper is used as-is.
//
// Supported key URIs: gcpkms://, awskms://, azurekeyvault://, hashivault://,
// base64key://
func NewPepperService(plainPepper, pepperCiphertext, kmsKeyURI string) PepperService {
	return &pepperService{
		plainPepper:      plainPepper,
		pepperCiphertext: pepperCiphertext,
		kmsKeyURI:        kmsKeyURI,
	}
}

// Resolve returns the pepper bytes, decrypting via KMS when configured.
func (p *pepperService) Resolve(ctx context.Context) ([]byte, error) {
	if p.pepperCiphertext == "" || p.kmsKeyURI == "" {
		if p.plainPepper == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no key pepper configured")
		}
		return []byte(p.plainPepper), nil
	}

	keeper, err := secrets.OpenKeeper(ctx, p.kmsKeyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer keeper.Close()

	ciphertext, err := base64.StdEncoding.DecodeString(p.pepperCiphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "key pepper ciphertext is not valid base64")
	}

	pepper, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt key pepper")
	}

	return pepper, nil
}
