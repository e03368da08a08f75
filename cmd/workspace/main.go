// Command workspace is the interactive front end for managing snack-shop
// orders and products. It signs in against the API, keeps the two entity
// collections in sync through the workspace orchestrator, and edits records
// through the same create/edit dialog flow the web client uses.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"snackshop/pkg/client"
	"snackshop/pkg/config"
	"snackshop/pkg/entity"
	"snackshop/pkg/logger"
	"snackshop/pkg/session"
	"snackshop/pkg/theme"
	"snackshop/pkg/workspace"
)

func main() {
	log := logger.NewDevelopment()
	defer log.Sync()

	cfg, err := config.LoadWorkspace()
	if err != nil {
		log.Fatalw("load config", "error", err)
	}

	sess := session.New()
	api := client.New(cfg.APIBaseURL, sess)
	ws := workspace.New(api, sess, log)
	themes := theme.NewManager(theme.FileStore{Path: cfg.ThemeFile})

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	fmt.Printf("snackshop workspace (%s, %s theme) — type 'help'\n", cfg.APIBaseURL, themes.Current())

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		args := strings.Fields(in.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "login":
			login(ctx, in, api, sess, ws)
		case "register":
			register(ctx, in, api, sess)
		case "logout":
			if sess.Authenticated() {
				if err := api.Logout(ctx); err != nil {
					log.Warnw("logout", "error", err)
				}
			}
			ws.Logout()
			fmt.Println("signed out")
		case "orders":
			requireSession(sess, func() { printOrders(ws.Orders()) })
		case "products":
			requireSession(sess, func() { printProducts(ws.Products()) })
		case "new-order":
			requireSession(sess, func() {
				ws.OpenOrderCreate()
				orderDialog(ctx, in, ws)
			})
		case "edit-order":
			requireSession(sess, func() {
				id, ok := argID(args)
				if !ok {
					fmt.Println("usage: edit-order <id>")
					return
				}
				if err := ws.OpenOrderEdit(id); err != nil {
					fmt.Println("no such order in the list")
					return
				}
				orderDialog(ctx, in, ws)
			})
		case "delete-order":
			requireSession(sess, func() {
				id, ok := argID(args)
				if !ok {
					fmt.Println("usage: delete-order <id>")
					return
				}
				if err := ws.DeleteOrder(ctx, id); err != nil {
					fmt.Println("delete failed:", err)
				}
			})
		case "new-product":
			requireSession(sess, func() {
				ws.OpenProductCreate()
				productDialog(ctx, in, ws)
			})
		case "edit-product":
			requireSession(sess, func() {
				id, ok := argID(args)
				if !ok {
					fmt.Println("usage: edit-product <id>")
					return
				}
				if err := ws.OpenProductEdit(id); err != nil {
					fmt.Println("no such product in the list")
					return
				}
				productDialog(ctx, in, ws)
			})
		case "delete-product":
			requireSession(sess, func() {
				id, ok := argID(args)
				if !ok {
					fmt.Println("usage: delete-product <id>")
					return
				}
				if err := ws.DeleteProduct(ctx, id); err != nil {
					fmt.Println("delete failed:", err)
				}
			})
		case "theme":
			fmt.Println("theme:", themes.Toggle())
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command; type 'help'")
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  login | register | logout
  orders | products
  new-order | edit-order <id> | delete-order <id>
  new-product | edit-product <id> | delete-product <id>
  theme | quit`)
}

func argID(args []string) (int64, bool) {
	if len(args) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	return id, err == nil
}

func requireSession(sess *session.Session, run func()) {
	if !sess.Authenticated() {
		fmt.Println("sign in first")
		return
	}
	run()
}

func prompt(in *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		return current
	}
	if v := strings.TrimSpace(in.Text()); v != "" {
		return v
	}
	return current
}

func login(ctx context.Context, in *bufio.Scanner, api *client.Client, sess *session.Session, ws *workspace.Workspace) {
	email := prompt(in, "email", "")
	password := prompt(in, "password", "")
	token, err := api.Login(ctx, email, password)
	if err != nil {
		fmt.Println("login failed:", err)
		return
	}
	sess.Init(token)
	ws.Mount(ctx)
	fmt.Printf("signed in: %d orders, %d products\n", len(ws.Orders()), len(ws.Products()))
}

func register(ctx context.Context, in *bufio.Scanner, api *client.Client, sess *session.Session) {
	email := prompt(in, "email", "")
	password := prompt(in, "password", "")
	token, err := api.Register(ctx, email, password)
	if err != nil {
		fmt.Println("registration failed:", err)
		return
	}
	sess.Init(token)
	fmt.Println("account created")
}

// orderDialog walks the order form field by field and submits. On failure
// the buffer is kept so submitting again retries with the same input.
func orderDialog(ctx context.Context, in *bufio.Scanner, ws *workspace.Workspace) {
	f := ws.OrderForm()
	draft := f.Snapshot()

	f.SetField("customer", prompt(in, "customer", draft.Customer))
	f.SetField("address", prompt(in, "address", draft.Address))

	selectable := ws.SelectableProducts()
	if len(selectable) == 0 {
		fmt.Println("no available products; add one first")
		ws.CloseOrderDialog()
		return
	}
	names := make([]string, len(selectable))
	for i, p := range selectable {
		names[i] = p.Name
	}
	fmt.Println("available products:", strings.Join(names, ", "))
	f.SetProduct(prompt(in, "product", draft.Product))

	status := prompt(in, "status (preparing/shipping/delivered)", string(draft.Status))
	if st, ok := entity.ParseStatus(status); ok {
		f.SetStatus(st)
	}

	if err := ws.SubmitOrder(ctx); err != nil {
		fmt.Println("submit failed:", err)
		return
	}
	fmt.Println("saved")
}

func productDialog(ctx context.Context, in *bufio.Scanner, ws *workspace.Workspace) {
	f := ws.ProductForm()
	draft := f.Snapshot()

	f.SetField("name", prompt(in, "name", draft.Name))
	f.SetField("price", prompt(in, "price", draft.Price))
	available := prompt(in, "available (true/false)", strconv.FormatBool(draft.Available))
	f.SetAvailable(available != "false")

	if err := ws.SubmitProduct(ctx); err != nil {
		fmt.Println("submit failed:", err)
		return
	}
	fmt.Println("saved")
}

func printOrders(orders []entity.Order) {
	if len(orders) == 0 {
		fmt.Println("no orders")
		return
	}
	for _, o := range orders {
		fmt.Printf("%4d  %-20s %-25s %-15s %s\n", o.ID, o.Customer, o.Address, o.Product, o.Status)
	}
}

func printProducts(products []entity.Product) {
	if len(products) == 0 {
		fmt.Println("no products")
		return
	}
	for _, p := range products {
		avail := "available"
		if !p.Available {
			avail = "unavailable"
		}
		fmt.Printf("%4d  %-20s %10s  %s\n", p.ID, p.Name, p.Price.String(), avail)
	}
}
