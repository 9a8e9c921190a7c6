package app

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/auth"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(hashPasswordCmd)
}

// ErrNoPassword is returned when stdin holds no password.
var ErrNoPassword = errors.New("no password on stdin")

func readPassword(cmd *cobra.Command) (string, error) {
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}

		return "", ErrNoPassword
	}

	pw := strings.TrimRight(sc.Text(), "\r\n")
	if pw == "" {
		return "", ErrNoPassword
	}

	return pw, nil
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Read a password from stdin and print its argon2id hash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pw, err := readPassword(cmd)
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(pw)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)

		return nil
	},
}
