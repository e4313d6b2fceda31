package pathparam

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ID читает {id} из пути. Нечисловой или неположительный id
// для клиента неотличим от отсутствующей записи.
func ID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
