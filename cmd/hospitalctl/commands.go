package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"hospital-medicine-api/pkg/client"
	"hospital-medicine-api/pkg/dto"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func loginCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Obtain a bearer token and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			username := v.GetString("username")
			if username == "" {
				return errors.New("--username is required")
			}
			c := client.New(v.GetString("server"), "")
			token, err := c.Token(cmd.Context(), username, v.GetString("password"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func listCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hospitals",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context(), v)
			if err != nil {
				return err
			}
			hospitals, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), hospitals)
		},
	}
}

func getCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one hospital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context(), v)
			if err != nil {
				return err
			}
			hospital, err := c.Get(cmd.Context(), id)
			if err != nil {
				return describe(err, id)
			}
			return render(cmd, *hospital)
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON instead of the detail view")
	return cmd
}

func createCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a hospital with its medicine",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.HospitalRequest
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				if err := json.Unmarshal(raw, &req); err != nil {
					return fmt.Errorf("parse %s: %w", file, err)
				}
			}
			if err := applyFlags(cmd.Flags(), &req); err != nil {
				return err
			}

			c, err := newClient(cmd.Context(), v)
			if err != nil {
				return err
			}
			hospital, err := c.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, *hospital)
		},
	}
	cmd.Flags().String("file", "", "JSON file holding the hospital")
	cmd.Flags().Bool("json", false, "Print JSON instead of the detail view")
	addFieldFlags(cmd.Flags())
	return cmd
}

func updateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a hospital: fields not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context(), v)
			if err != nil {
				return err
			}

			current, err := c.Get(cmd.Context(), id)
			if err != nil {
				return describe(err, id)
			}
			req := current.Request()
			if err := applyFlags(cmd.Flags(), &req); err != nil {
				return err
			}

			hospital, err := c.Update(cmd.Context(), id, req)
			if err != nil {
				return describe(err, id)
			}
			return render(cmd, *hospital)
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON instead of the detail view")
	addFieldFlags(cmd.Flags())
	return cmd
}

func deleteCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a hospital and its medicine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context(), v)
			if err != nil {
				return err
			}
			hospital, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return describe(err, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted hospital %d (%s)\n", hospital.ID, hospital.Name)
			return nil
		},
	}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hospital ID %q", s)
	}
	return uint(id), nil
}

func describe(err error, id uint) error {
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("hospital %d not found", id)
	}
	return err
}

func render(cmd *cobra.Command, hospital dto.HospitalResponse) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(hospital)
	}
	return renderDetail(cmd.OutOrStdout(), hospital)
}

// addFieldFlags registers one flag per editable field
func addFieldFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "Hospital name")
	fs.String("address", "", "Hospital address")
	fs.String("profile", "", "Hospital profile")
	fs.String("open-date", "", "Opening date, e.g. 1998-04-12T08:00")
	fs.Int("departments", 0, "Number of departments")
	fs.Int("beds", 0, "Number of beds")
	fs.Bool("child-dept", false, "Has a children's department")
	fs.String("medicine-name", "", "Medicine name")
	fs.String("medicine-form", "", "Medicine form")
	fs.String("manufacturer", "", "Medicine manufacturer")
	fs.String("production-date", "", "Medicine production date")
	fs.String("expiration", "", "Medicine expiration date")
	fs.String("price", "", "Medicine price, e.g. 12.50")
	fs.Bool("prescription", false, "Medicine requires a prescription")
}

// applyFlags overwrites the fields whose flag was set explicitly
func applyFlags(fs *pflag.FlagSet, req *dto.HospitalRequest) error {
	strs := map[string]*string{
		"name":            &req.Name,
		"address":         &req.Address,
		"profile":         &req.Profile,
		"open-date":       &req.OpenDate,
		"medicine-name":   &req.Medicines.Name,
		"medicine-form":   &req.Medicines.Form,
		"manufacturer":    &req.Medicines.Manufacturer,
		"production-date": &req.Medicines.ProductionDate,
		"expiration":      &req.Medicines.Expiration,
		"price":           &req.Medicines.Price,
	}
	ints := map[string]*int{
		"departments": &req.Departments,
		"beds":        &req.Beds,
	}
	bools := map[string]*bool{
		"child-dept":   &req.IsChildDept,
		"prescription": &req.Medicines.IsPrescription,
	}

	var err error
	for name, dst := range strs {
		if fs.Changed(name) {
			if *dst, err = fs.GetString(name); err != nil {
				return err
			}
		}
	}
	for name, dst := range ints {
		if fs.Changed(name) {
			if *dst, err = fs.GetInt(name); err != nil {
				return err
			}
		}
	}
	for name, dst := range bools {
		if fs.Changed(name) {
			if *dst, err = fs.GetBool(name); err != nil {
				return err
			}
		}
	}
	return nil
}
