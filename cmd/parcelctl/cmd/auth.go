package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/tokenstore"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authStatusCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication management",
	Long:  "Commands for managing authentication state and diagnostics.",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current authentication status including:
  - Whether credentials are stored and for which user
  - Access token claims and expiry
  - Server URL configured
  - Server connectivity (reachable or unreachable)`,
	RunE: runAuthStatus,
}

// tokenSignatureAlgs are the signature algorithms accepted when
// parsing stored access tokens for display.
var tokenSignatureAlgs = []jose.SignatureAlgorithm{
	jose.HS256, jose.RS256, jose.ES256,
}

// AuthStatus represents the authentication status for JSON/YAML output.
type AuthStatus struct {
	HasCredentials bool       `json:"has_credentials" yaml:"has_credentials"`
	User           string     `json:"user,omitempty" yaml:"user,omitempty"`
	Role           string     `json:"role,omitempty" yaml:"role,omitempty"`
	TokenSubject   string     `json:"token_subject,omitempty" yaml:"token_subject,omitempty"`
	TokenIssuedAt  *time.Time `json:"token_issued_at,omitempty" yaml:"token_issued_at,omitempty"`
	TokenExpiry    *time.Time `json:"token_expiry,omitempty" yaml:"token_expiry,omitempty"`
	TokenExpired   bool       `json:"token_expired" yaml:"token_expired"`
	ServerURL      string     `json:"server_url" yaml:"server_url"`
	ServerOK       bool       `json:"server_reachable" yaml:"server_reachable"`
	ServerError    string     `json:"server_error,omitempty" yaml:"server_error,omitempty"`
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	status := AuthStatus{ServerURL: cfg.ServerURL}

	creds, err := store.Load()
	switch {
	case err == nil:
		status.HasCredentials = true
		status.User = creds.User.Email
		status.Role = string(creds.User.Role)
		status.TokenExpired = creds.Expired(time.Now())
		fillTokenClaims(&status, creds.AccessToken)
		if status.TokenExpiry == nil {
			// Opaque token; fall back to the stored expiry.
			t := creds.ExpiresAtTime()
			status.TokenExpiry = &t
		}
	case errors.Is(err, tokenstore.ErrNotFound), errors.Is(err, tokenstore.ErrCorrupt):
		// Not signed in; still report connectivity below.
	default:
		return err
	}

	status.ServerOK, status.ServerError = checkServerConnectivity(cfg.ServerURL)

	if outputFormat != "table" {
		return formatOutput(status)
	}

	fmt.Println("Authentication Status")
	fmt.Println()

	if status.HasCredentials {
		fmt.Printf("  Signed in:   %s (%s)\n", status.User, status.Role)
		if status.TokenExpiry != nil {
			state := "valid"
			if status.TokenExpired {
				state = "expired, will refresh on next use"
			}
			fmt.Printf("  Token:       expires %s (%s)\n", status.TokenExpiry.Format(time.RFC3339), state)
		}
		if status.TokenSubject != "" {
			fmt.Printf("  Subject:     %s\n", status.TokenSubject)
		}
	} else {
		fmt.Println("  Signed in:   no")
		fmt.Println("               Run 'parcelctl login' to authenticate.")
	}

	fmt.Printf("  Server:      %s\n", status.ServerURL)
	if status.ServerOK {
		fmt.Println("  Connectivity: reachable")
	} else {
		fmt.Printf("  Connectivity: unreachable (%s)\n", status.ServerError)
	}
	return nil
}

// fillTokenClaims parses the access token without verifying its
// signature. The claims are display-only; the backend is the judge of
// token validity.
func fillTokenClaims(status *AuthStatus, raw string) {
	tok, err := jwt.ParseSigned(raw, tokenSignatureAlgs)
	if err != nil {
		return
	}
	var claims jwt.Claims
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return
	}
	status.TokenSubject = claims.Subject
	if claims.IssuedAt != nil {
		t := claims.IssuedAt.Time()
		status.TokenIssuedAt = &t
	}
	if claims.Expiry != nil {
		t := claims.Expiry.Time()
		status.TokenExpiry = &t
	}
}

func checkServerConnectivity(url string) (bool, string) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url + "/health")
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return false, fmt.Sprintf("server returned %d", resp.StatusCode)
	}
	return true, ""
}
