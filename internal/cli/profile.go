package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/unishop/pkg/model"
)

func newProfileCmd() *cobra.Command {
	var name, avatar, university string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the local profile",
		Long: "Edit display name, avatar, or university on the cached profile. " +
			"Changes are stored locally and reconciled with the server on the next sign-in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			update := model.ProfileUpdate{}
			if cmd.Flags().Changed("name") {
				update.DisplayName = &name
			}
			if cmd.Flags().Changed("avatar") {
				update.AvatarURL = &avatar
			}
			if cmd.Flags().Changed("university") {
				update.University = &university
			}
			if update.DisplayName == nil && update.AvatarURL == nil && update.University == nil {
				return fmt.Errorf("nothing to update: pass --name, --avatar, or --university")
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Sessions.UpdateProfile(cmd.Context(), update); err != nil {
				return fmt.Errorf("update profile: %w", err)
			}

			u := app.Sessions.Snapshot().User
			fmt.Printf("Profile updated: %s (%s)\n", u.DisplayName, u.University)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	cmd.Flags().StringVar(&university, "university", "", "University affiliation")
	return cmd
}

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			products, err := app.Client.FetchProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			if len(products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			fmt.Printf("%-14s  %-28s  %-12s  %10s\n", "ID", "NAME", "CATEGORY", "PRICE")
			fmt.Printf("%-14s  %-28s  %-12s  %10s\n", "--", "----", "--------", "-----")
			for _, p := range products {
				fmt.Printf("%-14s  %-28s  %-12s  %10.2f\n", p.ID, p.Name, p.CategoryName, p.Price)
			}
			return nil
		},
	}
}
