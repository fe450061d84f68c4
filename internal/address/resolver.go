// Package address resolves Philippine Standard Geographic Code (PSGC) codes
// to display names. Lookups go Redis cache, then the public PSGC API, then a
// local JSON snapshot; a code that resolves nowhere falls back to itself.
package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/redisx"
)

// Kind is one PSGC level.
type Kind string

const (
	KindRegion   Kind = "region"
	KindProvince Kind = "province"
	KindCityMun  Kind = "citymun"
	KindBarangay Kind = "barangay"
)

// apiPaths maps a kind to the PSGC API collection path.
var apiPaths = map[Kind]string{
	KindRegion:   "regions",
	KindProvince: "provinces",
	KindCityMun:  "cities-municipalities",
	KindBarangay: "barangays",
}

// localFiles maps a kind to the local snapshot file name.
var localFiles = map[Kind]string{
	KindRegion:   "regions.json",
	KindProvince: "provinces.json",
	KindCityMun:  "citymun.json",
	KindBarangay: "barangays.json",
}

// nameFields maps a kind to the JSON field carrying the display name in the
// local snapshot format.
var nameFields = map[Kind]struct{ code, name string }{
	KindRegion:   {"regCode", "regDesc"},
	KindProvince: {"provCode", "provDesc"},
	KindCityMun:  {"citymunCode", "citymunDesc"},
	KindBarangay: {"brgyCode", "brgyDesc"},
}

type Resolver struct {
	rdb      *redis.Client
	client   *http.Client
	baseURL  string
	localDir string
	log      *zap.Logger
}

func NewResolver(rdb *redis.Client, baseURL, localDir string, log *zap.Logger) *Resolver {
	return &Resolver{
		rdb:      rdb,
		client:   &http.Client{Timeout: 5 * time.Second},
		baseURL:  baseURL,
		localDir: localDir,
		log:      log,
	}
}

// Resolve returns the display name for a PSGC code. The code itself is
// returned when it is empty or cannot be resolved by any source.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, code string) string {
	if code == "" {
		return code
	}

	key := fmt.Sprintf(redisx.KeyPSGCName, kind, code)
	if r.rdb != nil {
		if name, err := r.rdb.Get(ctx, key).Result(); err == nil && name != "" {
			return name
		}
	}

	name := r.fromAPI(ctx, kind, code)
	if name == "" {
		name = r.fromLocal(kind, code)
	}
	if name == "" {
		return code
	}

	if r.rdb != nil {
		if err := r.rdb.Set(ctx, key, name, redisx.TTLPSGCName).Err(); err != nil {
			r.log.Warn("psgc cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return name
}

func (r *Resolver) RegionName(ctx context.Context, code string) string {
	return r.Resolve(ctx, KindRegion, code)
}

func (r *Resolver) ProvinceName(ctx context.Context, code string) string {
	return r.Resolve(ctx, KindProvince, code)
}

func (r *Resolver) CityMunName(ctx context.Context, code string) string {
	return r.Resolve(ctx, KindCityMun, code)
}

func (r *Resolver) BarangayName(ctx context.Context, code string) string {
	return r.Resolve(ctx, KindBarangay, code)
}

func (r *Resolver) fromAPI(ctx context.Context, kind Kind, code string) string {
	path, ok := apiPaths[kind]
	if !ok {
		return ""
	}
	url := fmt.Sprintf("%s/%s/%s/", r.baseURL, path, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debug("psgc api unreachable", zap.String("url", url), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Name
}

func (r *Resolver) fromLocal(kind Kind, code string) string {
	file, ok := localFiles[kind]
	if !ok || r.localDir == "" {
		return ""
	}
	raw, err := os.ReadFile(filepath.Join(r.localDir, file))
	if err != nil {
		return ""
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return ""
	}
	fields := nameFields[kind]
	for _, row := range rows {
		if c, _ := row[fields.code].(string); c == code {
			name, _ := row[fields.name].(string)
			return name
		}
	}
	return ""
}

// FullAddress assembles a one-line delivery address from resolved parts,
// skipping empty components.
func FullAddress(street, barangay, cityMun, province, region, postal string) string {
	parts := make([]string, 0, 6)
	for _, p := range []string{street, barangay, cityMun, province, region, postal} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
