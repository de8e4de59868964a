package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPlaintext(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		stored    string
		want      error
	}{
		{"match", "alicepw", "alicepw", nil},
		{"mismatch", "wrong", "alicepw", ErrMismatch},
		{"both empty", "", "", nil},
		{"brace not leading", "pw{x}", "pw{x}", nil},
		{"unterminated brace literal", "{pw", "{pw", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.plaintext, tt.stored); !errors.Is(err, tt.want) {
				t.Errorf("Verify = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifySHA(t *testing.T) {
	// base64(sha1("abc")), the classic NIST vector.
	const stored = "{SHA}qZk+NkcGgWq6PiVxeFDCbJzQ2J0="

	if err := Verify("abc", stored); err != nil {
		t.Errorf("Verify(abc) = %v", err)
	}
	if err := Verify("abd", stored); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify(abd) = %v, want mismatch", err)
	}
}

func TestVerifySSHA(t *testing.T) {
	stored := HashSSHA("secret", []byte("1234"))

	if err := Verify("secret", stored); err != nil {
		t.Errorf("Verify(secret) = %v", err)
	}
	if err := Verify("Secret", stored); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify(Secret) = %v, want mismatch", err)
	}

	// A zero-length salt degrades to the plain digest, so the SHA vector
	// doubles as an independent SSHA check.
	if err := Verify("abc", "{SSHA}qZk+NkcGgWq6PiVxeFDCbJzQ2J0="); err != nil {
		t.Errorf("Verify with empty salt = %v", err)
	}
}

func TestVerifySSHA256(t *testing.T) {
	stored := HashSSHA256("secret", []byte("salt"))
	if err := Verify("secret", stored); err != nil {
		t.Errorf("Verify = %v", err)
	}
	if err := Verify("wrong", stored); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify = %v, want mismatch", err)
	}
}

func TestVerifyCrypt(t *testing.T) {
	// Reference vectors from the public SHA-crypt specification.
	tests := []struct {
		name      string
		plaintext string
		stored    string
		want      error
	}{
		{
			"sha512 crypt match",
			"Hello world!",
			"{CRYPT}$6$saltstring$svn8UoSVapNtMuq1ukKS4tPQd8iKwSMHWjl/O817G3uBnIFNjnQJuesI68u4OTLiBFdcbYEdFCoEOfaS35inz1",
			nil,
		},
		{
			"sha512 crypt mismatch",
			"Hello world",
			"{CRYPT}$6$saltstring$svn8UoSVapNtMuq1ukKS4tPQd8iKwSMHWjl/O817G3uBnIFNjnQJuesI68u4OTLiBFdcbYEdFCoEOfaS35inz1",
			ErrMismatch,
		},
		{
			"sha256 crypt match",
			"Hello world!",
			"{CRYPT}$5$saltstring$5B8vYYiY.CVt1RlTTf8KbXBH3hsxY/GNooZaBBGWEc5",
			nil,
		},
		{
			"unregistered crypt format",
			"whatever",
			"{CRYPT}abJnggxhB/yWI",
			ErrMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.plaintext, tt.stored); !errors.Is(err, tt.want) {
				t.Errorf("Verify = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := SchemeBcrypt + string(hash)

	if err := Verify("secret", stored); err != nil {
		t.Errorf("Verify = %v", err)
	}
	if err := Verify("wrong", stored); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify = %v, want mismatch", err)
	}
}

func TestVerifyUnsupportedScheme(t *testing.T) {
	// A recognized-looking tag that is not implemented must mismatch, never
	// fall back to a literal comparison.
	stored := "{KERBEROS}whatever"
	if err := Verify("whatever", stored); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Verify = %v, want unsupported scheme", err)
	}
	if Matches(stored, stored) {
		t.Error("a tagged value must never literal-match")
	}
}

func TestVerifyMalformed(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"ssha not base64", "{SSHA}!!!"},
		{"ssha too short", "{SSHA}YWJj"},
		{"sha wrong length", "{SHA}YWJj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify("x", tt.stored); !errors.Is(err, ErrMalformed) {
				t.Errorf("Verify = %v, want malformed", err)
			}
		})
	}
}

func TestSchemeTagCaseInsensitive(t *testing.T) {
	if err := Verify("abc", "{sha}qZk+NkcGgWq6PiVxeFDCbJzQ2J0="); err != nil {
		t.Errorf("Verify = %v", err)
	}
}
