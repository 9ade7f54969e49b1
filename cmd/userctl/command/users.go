package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"userapi/internal/http-api/dto"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User management commands",
	Long:  `Manage users: list every user, create a new one, or update an existing one by email`,
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := newClient().ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		fmt.Fprintf(out, "Users (%d total):\n\n", len(users))
		for i := range users {
			printUser(out, &users[i])
		}
		return nil
	},
}

var (
	userName     string
	userEmail    string
	userPassword string
	userPhones   []string
)

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE: func(cmd *cobra.Command, args []string) error {
		phones, err := parsePhones(userPhones)
		if err != nil {
			return err
		}

		user, err := newClient().CreateUser(cmd.Context(), &dto.CreateUserRequest{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
			Phones:   phones,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ User created successfully!")
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var updateUserCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the user identified by --email",
	RunE: func(cmd *cobra.Command, args []string) error {
		phones, err := parsePhones(userPhones)
		if err != nil {
			return err
		}

		user, err := newClient().UpdateUser(cmd.Context(), &dto.UpdateUserRequest{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
			Phones:   phones,
		})
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ User updated successfully!")
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

// parsePhones reads "number:citycode:countrycode" triples.
func parsePhones(values []string) ([]dto.PhoneRequest, error) {
	phones := make([]dto.PhoneRequest, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid phone %q, expected number:citycode:countrycode", v)
		}
		phones = append(phones, dto.PhoneRequest{
			Number:      parts[0],
			CityCode:    parts[1],
			CountryCode: parts[2],
		})
	}
	return phones, nil
}

func printUser(out io.Writer, u *dto.UserResponse) {
	fmt.Fprintf(out, "ID: %s\n", u.ID)
	fmt.Fprintf(out, "Name: %s\n", u.Name)
	fmt.Fprintf(out, "Email: %s\n", u.Email)
	fmt.Fprintf(out, "Active: %t\n", u.IsActive)
	fmt.Fprintf(out, "Created: %s\n", u.Created.Format(dto.DateLayout))
	if u.Modified != nil {
		fmt.Fprintf(out, "Modified: %s\n", u.Modified.Format(dto.DateLayout))
	}
	fmt.Fprintf(out, "Last login: %s\n", u.LastLogin.Format(dto.DateLayout))
	for _, p := range u.Phones {
		fmt.Fprintf(out, "Phone: +%s (%s) %s\n", p.CountryCode, p.CityCode, p.Number)
	}
	fmt.Fprintln(out, strings.Repeat("-", 50))
}

func init() {
	for _, c := range []*cobra.Command{createUserCmd, updateUserCmd} {
		c.Flags().StringVar(&userName, "name", "", "user name")
		c.Flags().StringVar(&userEmail, "email", "", "user email")
		c.Flags().StringVar(&userPassword, "password", "", "user password")
		c.Flags().StringArrayVar(&userPhones, "phone", nil, "phone as number:citycode:countrycode (repeatable)")
		_ = c.MarkFlagRequired("email")
	}

	usersCmd.AddCommand(listUsersCmd)
	usersCmd.AddCommand(createUserCmd)
	usersCmd.AddCommand(updateUserCmd)
}
