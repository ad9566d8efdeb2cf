package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adiprakosa/kasirpos/config"
	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/cart"
	"github.com/adiprakosa/kasirpos/internal/session"
	"github.com/adiprakosa/kasirpos/internal/view"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/adiprakosa/kasirpos/pkg/recordclient"
	"github.com/adiprakosa/kasirpos/pkg/util"
)

// terminal bundles everything one register session owns
type terminal struct {
	client  *recordclient.Client
	session *session.Store
	cart    *cart.Store
	catalog *view.Controller[model.Product]
	reader  *bufio.Reader
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logger.Initialize(logger.Config{
		Level:  "warn",
		Format: "console",
	})

	client := recordclient.New(cfg.POS.APIBaseURL)
	term := &terminal{
		client:  client,
		session: session.NewStore(client, cfg.POS.StateDir),
		cart:    cart.NewStore(),
		catalog: view.NewController[model.Product](),
		reader:  bufio.NewReader(os.Stdin),
	}

	state := term.session.Restore()
	if state.IsLoggedIn {
		fmt.Printf("Welcome back, %s (%s)\n", state.User.Name, state.User.Email)
	} else {
		fmt.Println("KasirPOS terminal. Type 'login' to begin, 'help' for commands.")
	}

	term.loop()
}

func (t *terminal) loop() {
	for {
		fmt.Print("pos> ")
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			t.printHelp()
		case "login":
			t.login()
		case "logout":
			t.session.Logout()
			t.cart.Clear()
			fmt.Println("Logged out.")
		case "whoami":
			t.whoami()
		case "products":
			t.listProducts(args)
		case "add":
			t.addToCart(args)
		case "inc":
			t.adjustLine(args, true)
		case "dec":
			t.adjustLine(args, false)
		case "rm":
			t.removeLine(args)
		case "clear":
			t.cart.Clear()
			fmt.Println("Cart cleared.")
		case "cart":
			t.printCart()
		case "methods":
			t.listPaymentMethods()
		case "pay":
			t.checkout(args)
		case "orders":
			t.listOrders()
		case "catalog":
			t.catalogLoop()
		case "quit", "exit":
			return
		default:
			fmt.Printf("Unknown command %q. Type 'help'.\n", cmd)
		}
	}
}

func (t *terminal) printHelp() {
	fmt.Println(`Commands:
  login                 sign in (admin account required)
  logout                sign out and clear the saved session
  whoami                show the active session
  products [query]      list the catalog, optionally filtered
  add <productId>       add a product to the sale
  inc <productId>       one more unit of a line
  dec <productId>       one less unit (line stays at one)
  rm <productId>        drop a line from the sale
  cart                  show the sale in progress
  clear                 empty the sale
  methods               list accepted payment methods
  pay <methodId>        complete the sale
  orders                show today's orders
  catalog               manage products (list/create/edit)
  quit                  exit`)
}

func (t *terminal) prompt(label string) string {
	fmt.Print(label)
	line, _ := t.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (t *terminal) login() {
	email := t.prompt("Email: ")
	password := t.prompt("Password: ")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	state, err := t.session.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidCredentials):
			fmt.Println("Email or password is incorrect.")
		case errors.Is(err, session.ErrNotAuthorized):
			fmt.Println("This terminal is restricted to admin accounts.")
		default:
			fmt.Println("Login failed:", err)
		}
		return
	}

	fmt.Printf("Logged in as %s (%s)\n", state.User.Name, state.User.Role)
}

func (t *terminal) whoami() {
	state := t.session.State()
	if !state.IsLoggedIn {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s <%s> role=%s since %s\n",
		state.User.Name, state.User.Email, state.User.Role, util.FormatEpoch(state.User.CreatedAt))
}

type productListResponse struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
}

func (t *terminal) fetchProducts(query string) ([]model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resp productListResponse
	opts := []recordclient.QueryOption{}
	if query != "" {
		opts = append(opts, recordclient.WithQuery("q", query))
	}
	if err := t.client.List(ctx, "/products", &resp, opts...); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (t *terminal) listProducts(args []string) {
	query := strings.Join(args, " ")
	products, err := t.fetchProducts(query)
	if err != nil {
		fmt.Println("Failed to load products:", err)
		return
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}
	for _, p := range products {
		categoryName := "-"
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		fmt.Printf("  [%d] %-24s %-10s %10s  %s\n", p.ID, p.Name, p.SKU, util.FormatIDR(p.Price), categoryName)
	}
}

func (t *terminal) findProduct(id uint) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resp struct {
		Product model.Product `json:"product"`
	}
	if err := t.client.Get(ctx, fmt.Sprintf("/products/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func parseID(args []string) (uint, bool) {
	if len(args) != 1 {
		fmt.Println("Expected a product ID.")
		return 0, false
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("Product ID must be a number.")
		return 0, false
	}
	return uint(id), true
}

func (t *terminal) addToCart(args []string) {
	id, ok := parseID(args)
	if !ok {
		return
	}

	product, err := t.findProduct(id)
	if err != nil {
		fmt.Println("Failed to load product:", err)
		return
	}

	t.cart.Add(cart.LineItem{
		ProductID: product.ID,
		Product: cart.ProductSnapshot{
			ID:         product.ID,
			Name:       product.Name,
			SKU:        product.SKU,
			Price:      product.Price,
			Image:      product.Image,
			CategoryID: product.CategoryID,
			MinOrder:   product.MinOrder,
			CreatedAt:  product.CreatedAt,
		},
		Amounts:  1,
		SubTotal: product.Price,
	})

	fmt.Printf("Added %s.\n", product.Name)
	t.printCart()
}

func (t *terminal) adjustLine(args []string, up bool) {
	id, ok := parseID(args)
	if !ok {
		return
	}

	state := t.cart.State()
	var unitPrice int64
	found := false
	for _, item := range state.Items {
		if item.ProductID == id {
			unitPrice = item.Product.Price
			found = true
			break
		}
	}
	if !found {
		fmt.Println("That product is not in the sale.")
		return
	}

	if up {
		t.cart.Increment(id, unitPrice)
	} else if !t.cart.Decrement(id, unitPrice) {
		fmt.Println("Line is already at one unit; use 'rm' to drop it.")
	}
	t.printCart()
}

func (t *terminal) removeLine(args []string) {
	id, ok := parseID(args)
	if !ok {
		return
	}

	if removed, ok := t.cart.Remove(id); ok {
		fmt.Printf("Removed %s.\n", removed.Product.Name)
	} else {
		fmt.Println("That product is not in the sale.")
	}
	t.printCart()
}

func (t *terminal) printCart() {
	state := t.cart.State()
	if len(state.Items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}

	for _, item := range state.Items {
		fmt.Printf("  %-24s x%-3d %12s\n", item.Product.Name, item.Amounts, util.FormatIDR(item.SubTotal))
	}
	fmt.Printf("  %d item(s), total %s\n", state.TotalAmounts, util.FormatIDR(state.SubTotalProductPrice))
}

func (t *terminal) listPaymentMethods() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resp struct {
		PaymentMethods []model.PaymentMethod `json:"paymentMethods"`
	}
	if err := t.client.List(ctx, "/payment-methods", &resp); err != nil {
		fmt.Println("Failed to load payment methods:", err)
		return
	}
	for _, m := range resp.PaymentMethods {
		fmt.Printf("  [%d] %s\n", m.ID, m.Name)
	}
}

func (t *terminal) checkout(args []string) {
	if !t.session.State().IsLoggedIn {
		fmt.Println("Log in before completing a sale.")
		return
	}

	methodID, ok := parseID(args)
	if !ok {
		return
	}

	state := t.cart.State()
	if len(state.Items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var resp struct {
		Order model.Order `json:"order"`
	}
	err := t.client.Create(ctx, "/orders", map[string]interface{}{
		"paymentMethodId": methodID,
		"cart":            state,
	}, &resp)
	if err != nil {
		fmt.Println("Checkout failed:", err)
		return
	}

	t.cart.Clear()
	fmt.Printf("Sale complete. Invoice %s, total %s.\n",
		resp.Order.InvoiceNumber, util.FormatIDR(resp.Order.TotalPrice))
}

func (t *terminal) listOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resp struct {
		Orders []model.Order `json:"orders"`
	}
	if err := t.client.List(ctx, "/orders", &resp); err != nil {
		fmt.Println("Failed to load orders:", err)
		return
	}
	for _, o := range resp.Orders {
		fmt.Printf("  %s  %s  %d item(s)  %s\n",
			o.InvoiceNumber, util.FormatEpoch(o.CreatedAt), o.TotalAmounts, util.FormatIDR(o.TotalPrice))
	}
}

// catalogLoop is the product management screen. The view controller
// tracks whether the operator is browsing, creating, or editing.
func (t *terminal) catalogLoop() {
	t.catalog.ShowList()

	for {
		switch t.catalog.Mode() {
		case view.ModeList:
			t.listProducts(nil)
			cmd := t.prompt("catalog (new/edit <id>/back)> ")
			fields := strings.Fields(cmd)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "new":
				t.catalog.ShowCreate()
			case "edit":
				id, ok := parseID(fields[1:])
				if !ok {
					continue
				}
				product, err := t.findProduct(id)
				if err != nil {
					fmt.Println("Failed to load product:", err)
					continue
				}
				t.catalog.ShowEdit(product)
			case "back":
				return
			default:
				fmt.Println("Unknown catalog command.")
			}

		case view.ModeCreate:
			t.createProduct()
			t.catalog.ShowList()

		case view.ModeEdit:
			t.editProduct(t.catalog.EditTarget())
			t.catalog.ShowList()
		}
	}
}

func (t *terminal) createProduct() {
	name := t.prompt("Name: ")
	sku := t.prompt("SKU: ")
	price, err := strconv.ParseInt(t.prompt("Price (IDR): "), 10, 64)
	if err != nil || price <= 0 {
		fmt.Println("Price must be a positive number.")
		return
	}
	categoryID, err := strconv.ParseUint(t.prompt("Category ID: "), 10, 32)
	if err != nil {
		fmt.Println("Category ID must be a number.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resp struct {
		Product model.Product `json:"product"`
	}
	err = t.client.Create(ctx, "/products", map[string]interface{}{
		"name":       name,
		"sku":        sku,
		"price":      price,
		"categoryId": uint(categoryID),
	}, &resp)
	if err != nil {
		fmt.Println("Failed to create product:", err)
		return
	}
	fmt.Printf("Created %s [%d].\n", resp.Product.Name, resp.Product.ID)
}

func (t *terminal) editProduct(product *model.Product) {
	if product == nil {
		return
	}

	fmt.Printf("Editing %s (leave blank to keep)\n", product.Name)
	payload := map[string]interface{}{}
	if name := t.prompt(fmt.Sprintf("Name [%s]: ", product.Name)); name != "" {
		payload["name"] = name
	}
	if raw := t.prompt(fmt.Sprintf("Price [%s]: ", util.FormatIDR(product.Price))); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || price <= 0 {
			fmt.Println("Price must be a positive number.")
			return
		}
		payload["price"] = price
	}
	if len(payload) == 0 {
		fmt.Println("Nothing to change.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resp struct {
		Product model.Product `json:"product"`
	}
	if err := t.client.Update(ctx, fmt.Sprintf("/products/%d", product.ID), payload, &resp); err != nil {
		fmt.Println("Failed to update product:", err)
		return
	}
	fmt.Printf("Updated %s.\n", resp.Product.Name)
}
