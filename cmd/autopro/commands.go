package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kalambet/autopro/internal/api"
	"github.com/kalambet/autopro/internal/catalog"
	"github.com/kalambet/autopro/internal/config"
	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/session"
)

func init() {
	rootCmd.AddCommand(carsCmd, configureCmd, accountCmd, configsCmd, filtersCmd, ordersCmd, prefsCmd, configCmd)
}

var euro = message.NewPrinter(language.English)

// formatPrice renders whole euros with thousands separators, e.g. €62,900.
func formatPrice(n int) string {
	return euro.Sprintf("€%d", n)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- used-car query flags ---

var queryStringFlags = []struct{ name, usage string }{
	{"query", "free text matched against make and model"},
	{"make", "exact make"},
	{"body-type", "exact body type"},
	{"fuel", "exact fuel type"},
	{"transmission", "exact transmission"},
	{"drivetrain", "exact drivetrain"},
	{"location", "exact location"},
	{"sort", "priceAsc, priceDesc, yearDesc or mileageAsc"},
}

var queryIntFlags = []struct{ name, usage string }{
	{"min-price", "minimum price in EUR"},
	{"max-price", "maximum price in EUR"},
	{"min-year", "earliest model year"},
	{"max-year", "latest model year"},
	{"min-mileage", "minimum mileage in km"},
	{"max-mileage", "maximum mileage in km"},
}

func addQueryFlags(cmd *cobra.Command) {
	for _, f := range queryStringFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	for _, f := range queryIntFlags {
		cmd.Flags().Int(f.name, 0, f.usage)
	}
}

// queryFromFlags builds a validated search query from the used-car flags.
func queryFromFlags(cmd *cobra.Command) (search.Query, error) {
	str := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	num := func(name string) int {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}

	q := search.Query{
		Text:         str("query"),
		Make:         str("make"),
		BodyType:     str("body-type"),
		Fuel:         str("fuel"),
		Transmission: str("transmission"),
		Drivetrain:   str("drivetrain"),
		Location:     str("location"),
		MinPrice:     num("min-price"),
		MaxPrice:     num("max-price"),
		MinYear:      num("min-year"),
		MaxYear:      num("max-year"),
		MinMileage:   num("min-mileage"),
		MaxMileage:   num("max-mileage"),
	}
	if s := str("sort"); s != "" {
		key, err := search.ParseSortKey(s)
		if err != nil {
			return search.Query{}, err
		}
		q.SortBy = key
	}
	if err := q.Validate(); err != nil {
		return search.Query{}, err
	}
	return q, nil
}

// queryValues encodes q as /used-cars query parameters. Unset fields are omitted.
func queryValues(q search.Query) url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setInt := func(key string, n int) {
		if n != 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}
	set("q", q.Text)
	set("make", q.Make)
	set("bodyType", q.BodyType)
	set("fuel", q.Fuel)
	set("transmission", q.Transmission)
	set("drivetrain", q.Drivetrain)
	set("location", q.Location)
	set("sort", string(q.SortBy))
	setInt("minPrice", q.MinPrice)
	setInt("maxPrice", q.MaxPrice)
	setInt("minYear", q.MinYear)
	setInt("maxYear", q.MaxYear)
	setInt("minMileage", q.MinMileage)
	setInt("maxMileage", q.MaxMileage)
	return v
}

func searchPath(q search.Query) string {
	if enc := queryValues(q).Encode(); enc != "" {
		return "/used-cars?" + enc
	}
	return "/used-cars"
}

func printSearchResults(w io.Writer, res api.SearchResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCAR\tYEAR\tMILEAGE\tPRICE\tLOCATION")
	for _, c := range res.Results {
		fmt.Fprintf(tw, "%s\t%s %s\t%d\t%s km\t%s\t%s\n",
			c.ID, c.Make, c.Model, c.Year, euro.Sprintf("%d", c.Mileage), formatPrice(c.Price), c.Location)
	}
	tw.Flush()

	if res.Stats.Count == 0 {
		fmt.Fprintln(w, "No cars match these filters.")
		return
	}
	fmt.Fprintf(w, "\n%d of %d cars · lowest %s · median %s · highest %s\n",
		res.Stats.Count, res.Total,
		formatPrice(res.Stats.Lowest), formatPrice(res.Stats.Median), formatPrice(res.Stats.Highest))
}

// --- cars ---

var carsCmd = &cobra.Command{
	Use:   "cars",
	Short: "Browse the used-car inventory",
}

var carsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter and sort used cars",
	Long: `Filter and sort used cars.

Examples:
  autopro cars search --make BMW --max-price 70000
  autopro cars search --fuel Electric --sort priceAsc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryFromFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), searchPath(q))
		if err != nil {
			return err
		}
		var res api.SearchResponse
		if err := decodeJSON(resp, &res); err != nil {
			return err
		}

		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printSearchResults(cmd.OutOrStdout(), res)
		return nil
	},
}

var carsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a used-car listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/used-cars/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}
		var car catalog.UsedCar
		if err := decodeJSON(resp, &car); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), car)
	},
}

var carsOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the values offered by the used-car filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/catalog/filter-options")
		if err != nil {
			return err
		}
		var opts catalog.FilterOptions
		if err := decodeJSON(resp, &opts); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), opts)
	},
}

func init() {
	addQueryFlags(carsSearchCmd)
	carsSearchCmd.Flags().Bool("json", false, "print the raw JSON response")
	carsCmd.AddCommand(carsSearchCmd, carsShowCmd, carsOptionsCmd)
}

// --- configure ---

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Price a new-car configuration",
	Long: `Price a new-car configuration. Every part is optional; the quote
lists the steps still missing.

Examples:
  autopro configure --model apex-suv --trim luxury --powertrain hybrid-250 --exterior racing-red
  autopro configure --model apex-suv --trim luxury --powertrain hybrid-250 --exterior racing-red --accessory tow-bar --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := configurator.SelectionIDs{}
		ids.Model, _ = cmd.Flags().GetString("model")
		ids.Trim, _ = cmd.Flags().GetString("trim")
		ids.Powertrain, _ = cmd.Flags().GetString("powertrain")
		ids.Exterior, _ = cmd.Flags().GetString("exterior")
		ids.Accessories, _ = cmd.Flags().GetStringSlice("accessory")
		save, _ := cmd.Flags().GetBool("save")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/configurator/quote", ids)
		if err != nil {
			return err
		}
		var quote configurator.Quote
		if err := decodeJSON(resp, &quote); err != nil {
			return err
		}
		printQuote(cmd.OutOrStdout(), quote)

		if !save {
			return nil
		}
		if _, err := configurator.Walk(catalog.Default(), ids); err != nil {
			return fmt.Errorf("cannot save configuration: %w", err)
		}
		resp, err = client.post(cmd.Context(), "/account/configurations", ids)
		if err != nil {
			return err
		}
		var saved session.SavedConfiguration
		if err := decodeJSON(resp, &saved); err != nil {
			return err
		}
		printSuccess("Saved configuration %s", saved.ID)
		return nil
	},
}

func init() {
	configureCmd.Flags().String("model", "", "model id")
	configureCmd.Flags().String("trim", "", "trim id")
	configureCmd.Flags().String("powertrain", "", "powertrain id")
	configureCmd.Flags().String("exterior", "", "exterior package id")
	configureCmd.Flags().StringSlice("accessory", nil, "accessory id (repeatable or comma-separated)")
	configureCmd.Flags().Bool("save", false, "save the configuration to the signed-in account")
}

func joinSteps(steps []configurator.Step) string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func printQuote(w io.Writer, q configurator.Quote) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range q.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Kind, l.Name, formatPrice(l.Price))
	}
	fmt.Fprintf(tw, "\t%s\t%s\n", colorize(colorBold, "Total"), colorize(colorBold, formatPrice(q.Total)))
	tw.Flush()
	if !q.Complete {
		printWarning("Incomplete: choose %s", joinSteps(q.Missing))
	}
}

// --- account ---

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Sign in and manage the dealership account",
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("--email and --password are required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		printStep("Signing in...")
		resp, err := client.post(cmd.Context(), "/auth/login", api.LoginRequest{Email: email, Password: password})
		if err != nil {
			return err
		}
		var user session.User
		if err := decodeJSON(resp, &user); err != nil {
			return err
		}
		printSuccess("Signed in as %s <%s>", user.Name, user.Email)
		return nil
	},
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		var reg session.Registration
		reg.Name, _ = cmd.Flags().GetString("name")
		reg.Email, _ = cmd.Flags().GetString("email")
		reg.Password, _ = cmd.Flags().GetString("password")
		reg.Confirm, _ = cmd.Flags().GetString("confirm")
		if reg.Confirm == "" {
			reg.Confirm = reg.Password
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		printStep("Creating account...")
		resp, err := client.post(cmd.Context(), "/auth/register", reg)
		if err != nil {
			return err
		}
		var user session.User
		if err := decodeJSON(resp, &user); err != nil {
			return err
		}
		printSuccess("Registered and signed in as %s <%s>", user.Name, user.Email)
		return nil
	},
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored account data",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/auth/logout", nil)
		if err != nil {
			return err
		}
		if err := expectOK(resp); err != nil {
			return err
		}
		printSuccess("Signed out")
		return nil
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in account as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/account")
		if err != nil {
			return err
		}
		var acct api.Account
		if err := decodeJSON(resp, &acct); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), acct)
	},
}

var accountExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download all account data as a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/account/export")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return responseError(resp)
		}

		if output == "-" {
			_, err := io.Copy(cmd.OutOrStdout(), resp.Body)
			return err
		}
		if output == "" {
			output = exportFilename(resp.Header.Get("Content-Disposition"))
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		if _, err := io.Copy(f, resp.Body); err != nil {
			f.Close()
			return fmt.Errorf("writing export: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		printSuccess("Data exported to %s", output)
		return nil
	},
}

// exportFilename takes the download name from a Content-Disposition header,
// falling back to a generic name.
func exportFilename(disposition string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := params["filename"]; name != "" && !strings.ContainsAny(name, `/\`) {
			return name
		}
	}
	return "autopro-data-export.json"
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account and all of its data",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete the account and ALL saved data. Use --confirm to proceed.")
			return nil
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/account")
		if err != nil {
			return err
		}
		if err := expectOK(resp); err != nil {
			return err
		}
		printSuccess("Account deleted")
		return nil
	},
}

func init() {
	accountLoginCmd.Flags().String("email", "", "account email")
	accountLoginCmd.Flags().String("password", "", "account password")

	accountRegisterCmd.Flags().String("name", "", "full name")
	accountRegisterCmd.Flags().String("email", "", "account email")
	accountRegisterCmd.Flags().String("password", "", "password")
	accountRegisterCmd.Flags().String("confirm", "", "password confirmation (defaults to --password)")

	accountExportCmd.Flags().StringP("output", "o", "", `output file ("-" for stdout, default: server-suggested name)`)
	accountDeleteCmd.Flags().Bool("confirm", false, "confirm account deletion")

	accountCmd.AddCommand(accountLoginCmd, accountRegisterCmd, accountLogoutCmd, accountShowCmd, accountExportCmd, accountDeleteCmd)
}

// --- saved configurations ---

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Manage saved configurations",
}

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/account/configurations")
		if err != nil {
			return err
		}
		var configs []session.SavedConfiguration
		if err := decodeJSON(resp, &configs); err != nil {
			return err
		}

		if len(configs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved configurations.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tMODEL\tTRIM\tPOWERTRAIN\tTOTAL")
		for _, c := range configs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Date, c.Model, c.Trim, c.Powertrain, formatPrice(c.TotalPrice))
		}
		return tw.Flush()
	},
}

var configsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/account/configurations/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}
		if err := expectOK(resp); err != nil {
			return err
		}
		printSuccess("Deleted configuration %s", args[0])
		return nil
	},
}

func init() {
	configsCmd.AddCommand(configsListCmd, configsDeleteCmd)
}

// --- saved searches ---

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Manage saved used-car searches",
}

func fetchFilters(cmd *cobra.Command, client *apiClient) ([]session.SavedFilter, error) {
	resp, err := client.get(cmd.Context(), "/account/filters")
	if err != nil {
		return nil, err
	}
	var filters []session.SavedFilter
	if err := decodeJSON(resp, &filters); err != nil {
		return nil, err
	}
	return filters, nil
}

var filtersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		filters, err := fetchFilters(cmd, client)
		if err != nil {
			return err
		}

		if len(filters) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved searches.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCREATED\tFILTERS")
		for _, f := range filters {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.CreatedAt.Format("2006-01-02"), queryValues(f.Filters).Encode())
		}
		return tw.Flush()
	},
}

var filtersSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a used-car search",
	Long: `Save a used-car search to the signed-in account.

Examples:
  autopro filters save --name "Family SUVs" --body-type SUV --max-price 50000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryFromFlags(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/account/filters", api.SaveFilterRequest{Name: name, Filters: q})
		if err != nil {
			return err
		}
		var saved session.SavedFilter
		if err := decodeJSON(resp, &saved); err != nil {
			return err
		}
		printSuccess("Saved search %q as %s", saved.Name, saved.ID)
		return nil
	},
}

var filtersRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Run a saved search against the current inventory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		filters, err := fetchFilters(cmd, client)
		if err != nil {
			return err
		}
		for _, f := range filters {
			if f.ID != args[0] {
				continue
			}
			resp, err := client.get(cmd.Context(), searchPath(f.Filters))
			if err != nil {
				return err
			}
			var res api.SearchResponse
			if err := decodeJSON(resp, &res); err != nil {
				return err
			}
			printStep("%s", f.Name)
			printSearchResults(cmd.OutOrStdout(), res)
			return nil
		}
		return fmt.Errorf("saved search %s not found", args[0])
	},
}

var filtersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/account/filters/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}
		if err := expectOK(resp); err != nil {
			return err
		}
		printSuccess("Deleted saved search %s", args[0])
		return nil
	},
}

func init() {
	addQueryFlags(filtersSaveCmd)
	filtersSaveCmd.Flags().String("name", "", "name for the saved search (default: dated name)")
	filtersCmd.AddCommand(filtersListCmd, filtersSaveCmd, filtersRunCmd, filtersDeleteCmd)
}

// --- orders ---

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders and reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/account/orders")
		if err != nil {
			return err
		}
		var orders []session.Order
		if err := decodeJSON(resp, &orders); err != nil {
			return err
		}

		if len(orders) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No orders.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tTYPE\tSTATUS\tVEHICLE\tPRICE")
		for _, o := range orders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.Date, o.Type, o.Status, o.Vehicle, formatPrice(o.Price))
		}
		return tw.Flush()
	},
}

// --- preferences ---

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change language and cookie consent",
}

var prefsLanguageCmd = &cobra.Command{
	Use:   "language [code]",
	Short: "Show or set the interface language",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var resp *http.Response
		if len(args) == 1 {
			resp, err = client.put(cmd.Context(), "/preferences/language", map[string]string{"code": args[0]})
		} else {
			resp, err = client.get(cmd.Context(), "/preferences/language")
		}
		if err != nil {
			return err
		}
		var lang api.LanguageResponse
		if err := decodeJSON(resp, &lang); err != nil {
			return err
		}

		if len(args) == 1 {
			printSuccess("Language set to %s", lang.Language.Name)
			return nil
		}
		for _, l := range lang.Supported {
			marker := " "
			if l.Code == lang.Language.Code {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", marker, l.Code, l.Name)
		}
		return nil
	},
}

var prefsConsentCmd = &cobra.Command{
	Use:   "consent [accept-all|reject-all]",
	Short: "Show or record cookie consent",
	Long: `Show or record cookie consent. Necessary cookies are always on.

Examples:
  autopro prefs consent
  autopro prefs consent accept-all
  autopro prefs consent --analytics=true --marketing=false`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"accept-all", "reject-all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var resp *http.Response
		switch {
		case len(args) == 1:
			resp, err = client.post(cmd.Context(), "/preferences/consent/"+args[0], nil)
		case cmd.Flags().Changed("analytics") || cmd.Flags().Changed("marketing"):
			analytics, _ := cmd.Flags().GetBool("analytics")
			marketing, _ := cmd.Flags().GetBool("marketing")
			resp, err = client.put(cmd.Context(), "/preferences/consent", map[string]bool{
				"necessary": true,
				"analytics": analytics,
				"marketing": marketing,
			})
		default:
			resp, err = client.get(cmd.Context(), "/preferences/consent")
		}
		if err != nil {
			return err
		}
		var c api.ConsentResponse
		if err := decodeJSON(resp, &c); err != nil {
			return err
		}

		if !c.Decided {
			printStatus("Consent", "not yet decided")
			return nil
		}
		printStatus("Necessary", "%t", c.Consent.Necessary)
		printStatus("Analytics", "%t", c.Consent.Analytics)
		printStatus("Marketing", "%t", c.Consent.Marketing)
		return nil
	},
}

func init() {
	prefsConsentCmd.Flags().Bool("analytics", false, "allow analytics cookies")
	prefsConsentCmd.Flags().Bool("marketing", false, "allow marketing cookies")
	prefsCmd.AddCommand(prefsLanguageCmd, prefsConsentCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s  %s\n", colorize(colorBold, k.Key), k.Value, colorize(colorCyan, "("+k.EnvVar+")"))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Valid keys: " + strings.Join(config.ValidKeys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("Unset %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configUnsetCmd)
}
