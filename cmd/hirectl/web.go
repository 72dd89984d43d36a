package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/matheus3301/hirechat/internal/app"
	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/tui/views"
	"github.com/spf13/cobra"
)

var noQRFlag bool

var csrfCmd = &cobra.Command{
	Use:   "csrf [page-path]",
	Short: "Read the anti-forgery header and token from a dashboard page",
	Long: `Loads a dashboard page with the profile's session cookie and prints the
CSRF header name and token found in it. Defaults to the profile's dashboard.
Copy the values into csrf_header / csrf_token to skip discovery at startup.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCSRF,
}

var shareCmd = &cobra.Command{
	Use:   "share [view]",
	Short: "Print the dashboard link of a view as a QR code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShare,
}

func init() {
	shareCmd.Flags().BoolVar(&noQRFlag, "no-qr", false, "print only the link")
	rootCmd.AddCommand(csrfCmd, shareCmd)
}

func runCSRF(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	page := e.settings.Dashboard().Path
	if len(args) == 1 {
		page = args[0]
	}
	client, err := e.api()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	header, token, err := client.DiscoverCSRF(ctx, page)
	if err != nil {
		return err
	}

	if jsonFlag {
		return outputJSON(map[string]string{"header": header, "token": token})
	}
	fmt.Printf("csrf_header = %q\n", header)
	fmt.Printf("csrf_token  = %q\n", token)
	return nil
}

func runShare(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	client, err := e.api()
	if err != nil {
		return err
	}
	link, err := shareLink(client.BaseURL(), e.settings, args)
	if err != nil {
		return err
	}

	if jsonFlag {
		return outputJSON(map[string]string{"url": link.String()})
	}
	if !noQRFlag {
		fmt.Fprint(os.Stdout, views.RenderQR(link.String()))
	}
	fmt.Println(link.String())
	return nil
}

// shareLink returns the profile's start URL, or the link that opens a view.
func shareLink(base *url.URL, s *app.Settings, args []string) (*url.URL, error) {
	d := s.Dashboard()
	loc, err := app.StartLocation(base, d, s.Profile.StartURL)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return loc, nil
	}
	v, ok := d.View(args[0])
	if !ok {
		return nil, fmt.Errorf("%q: %w (views: %v)", args[0], router.ErrUnknownView, d.IDs())
	}
	if v.External != "" {
		return app.StartLocation(base, d, v.External)
	}
	return router.New(d, loc, nil, nil).URLFor(v.ID)
}
