package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"snackshop/pkg/config"
	"snackshop/pkg/entity"
	"snackshop/pkg/logger"
	otelx "snackshop/pkg/otel"
	"snackshop/pkg/store"
	"snackshop/pkg/store/memory"
	"snackshop/pkg/store/postgres"
)

const sessionTTL = time.Hour

var (
	log         *zap.SugaredLogger
	redisClient *redis.Client
	orders      store.Orders
	products    store.Products
	users       store.Users
	tracer      trace.Tracer
)

// @title Snackshop API
// @version 1.0
// @description Order and product management for the snack shop workspace
// @BasePath /
func main() {
	log = logger.New()
	defer log.Sync()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalw("load config", "error", err)
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := otelx.InitTracing(context.Background(), "snackshop-api", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalw("init tracing", "error", err)
		}
		defer shutdown(context.Background())
	}
	tracer = otel.Tracer("snackshop-api")

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("open database", "error", err)
		}
		pg := postgres.New(db)
		if err := pg.Migrate(context.Background()); err != nil {
			log.Fatalw("migrate", "error", err)
		}
		orders, products, users = pg.Orders(), pg.Products(), pg.Users()
	} else {
		mem := memory.New()
		orders, products, users = mem.Orders(), mem.Products(), mem.Users()
		log.Info("no DATABASE_URL, using in-memory store")
	}

	redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	r := mux.NewRouter()
	r.Use(traceMiddleware)
	r.HandleFunc("/register", registerHandler).Methods(http.MethodPost)
	r.HandleFunc("/login", loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/logout", logoutHandler).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/orders", listOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders", createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", updateOrderHandler).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}", deleteOrderHandler).Methods(http.MethodDelete)
	api.HandleFunc("/products", listProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products", createProductHandler).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", updateProductHandler).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", deleteProductHandler).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	log.Infow("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Errorw("server closed", "error", err)
		os.Exit(1)
	}
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		email, err := redisClient.Get(r.Context(), "session:"+token).Result()
		if err != nil || email == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionToken pulls the token from the Authorization header or, failing
// that, the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("session_id"); err == nil {
		return c.Value
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeViolations(w http.ResponseWriter, violations []entity.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": violations})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func issueSession(w http.ResponseWriter, r *http.Request, email string) {
	token := uuid.NewString()
	if err := redisClient.Set(r.Context(), "session:"+token, email, sessionTTL).Err(); err != nil {
		log.Errorw("store session", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// registerHandler creates an account and starts a session.
// @Summary Register
// @Accept json
// @Produce json
// @Param creds body credentials true "Credentials"
// @Success 200 {object} map[string]string
// @Router /register [post]
func registerHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := users.Create(r.Context(), store.User{Email: creds.Email, PasswordHash: string(hash)}); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		log.Errorw("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	issueSession(w, r, creds.Email)
}

// loginHandler authenticates and starts a session.
// @Summary Login
// @Accept json
// @Produce json
// @Param creds body credentials true "Credentials"
// @Success 200 {object} map[string]string
// @Router /login [post]
func loginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	u, err := users.ByEmail(r.Context(), creds.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	issueSession(w, r, creds.Email)
}

// logoutHandler drops the session, if any.
// @Summary Logout
// @Success 200
// @Router /logout [post]
func logoutHandler(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		redisClient.Del(r.Context(), "session:"+token)
	}
	w.WriteHeader(http.StatusOK)
}

// listOrdersHandler returns all orders.
// @Summary List orders
// @Produce json
// @Success 200 {array} entity.Order
// @Router /orders [get]
func listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	list, err := orders.List(r.Context())
	if err != nil {
		log.Errorw("list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []entity.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

// createOrderHandler validates and stores a new order.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body entity.OrderDraft true "Order"
// @Success 201 {object} entity.Order
// @Router /orders [post]
func createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var draft entity.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	o, violations := entity.ValidateOrder(draft)
	if violations != nil {
		writeViolations(w, violations)
		return
	}
	created, err := orders.Create(r.Context(), o)
	if err != nil {
		log.Errorw("create order", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateOrderHandler replaces an order in full.
// @Summary Update order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body entity.OrderDraft true "Order"
// @Success 200 {object} entity.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [put]
func updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var draft entity.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	o, violations := entity.ValidateOrder(draft)
	if violations != nil {
		writeViolations(w, violations)
		return
	}
	o.ID = id
	updated, err := orders.Update(r.Context(), o)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Errorw("update order", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteOrderHandler removes an order.
// @Summary Delete order
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [delete]
func deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := orders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Errorw("delete order", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listProductsHandler returns all products.
// @Summary List products
// @Produce json
// @Success 200 {array} entity.Product
// @Router /products [get]
func listProductsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := products.List(r.Context())
	if err != nil {
		log.Errorw("list products", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []entity.Product{}
	}
	writeJSON(w, http.StatusOK, list)
}

// createProductHandler validates and stores a new product.
// @Summary Create product
// @Accept json
// @Produce json
// @Param product body entity.ProductDraft true "Product"
// @Success 201 {object} entity.Product
// @Router /products [post]
func createProductHandler(w http.ResponseWriter, r *http.Request) {
	var draft entity.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, violations := entity.ValidateProduct(draft)
	if violations != nil {
		writeViolations(w, violations)
		return
	}
	created, err := products.Create(r.Context(), p)
	if err != nil {
		log.Errorw("create product", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateProductHandler replaces a product in full.
// @Summary Update product
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body entity.ProductDraft true "Product"
// @Success 200 {object} entity.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var draft entity.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, violations := entity.ValidateProduct(draft)
	if violations != nil {
		writeViolations(w, violations)
		return
	}
	p.ID = id
	updated, err := products.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Errorw("update product", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteProductHandler removes a product.
// @Summary Delete product
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Errorw("delete product", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
