package handler

import (
	"net/http"

	adminsdomain "studio-admin/internal/domain/admins"
	checkinsdomain "studio-admin/internal/domain/checkins"
	classesdomain "studio-admin/internal/domain/classes"
	instructorsdomain "studio-admin/internal/domain/instructors"
	mediadomain "studio-admin/internal/domain/media"
	membershipsdomain "studio-admin/internal/domain/memberships"
	newsdomain "studio-admin/internal/domain/news"
	packsdomain "studio-admin/internal/domain/packs"
	promotionsdomain "studio-admin/internal/domain/promotions"
	ratingsdomain "studio-admin/internal/domain/ratings"
	"studio-admin/pkg/logger"
)

type Services struct {
	Classes     *classesdomain.Service
	Packs       *packsdomain.Service
	Memberships *membershipsdomain.Service
	Instructors *instructorsdomain.Service
	Promotions  *promotionsdomain.Service
	News        *newsdomain.Service
	Ratings     *ratingsdomain.Service
	CheckIns    *checkinsdomain.Service
	Admins      *adminsdomain.Service
	Media       *mediadomain.Service
}

type Handlers struct {
	Classes     *classesdomain.Service
	Packs       *packsdomain.Service
	Memberships *membershipsdomain.Service
	Instructors *instructorsdomain.Service
	Promotions  *promotionsdomain.Service
	News        *newsdomain.Service
	Ratings     *ratingsdomain.Service
	CheckIns    *checkinsdomain.Service
	Admins      *adminsdomain.Service
	Media       *mediadomain.Service
	log         logger.Logger
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{
		Classes:     services.Classes,
		Packs:       services.Packs,
		Memberships: services.Memberships,
		Instructors: services.Instructors,
		Promotions:  services.Promotions,
		News:        services.News,
		Ratings:     services.Ratings,
		CheckIns:    services.CheckIns,
		Admins:      services.Admins,
		Media:       services.Media,
		log:         log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// discard removes blobs that lost their owner and returns the ones that
// could not be removed yet.
func (h *Handlers) discard(r *http.Request, urls []string) []string {
	if h.Media == nil || len(urls) == 0 {
		return []string{}
	}
	return h.Media.Discard(r.Context(), urls)
}
