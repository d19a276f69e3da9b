package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

var (
	regular   = models.Actor{UID: "u1", Username: "user1", Role: "user"}
	admin     = models.Actor{UID: "a1", Username: "admin1", Role: "admin"}
	superuser = models.Actor{UID: "s1", Username: "root", Role: "admin", IsSuperuser: true}
)

func TestAllowed_PolicyTable(t *testing.T) {
	tests := []struct {
		name   string
		actor  models.Actor
		action Action
		kind   Kind
		want   bool
	}{
		{"пользователь не создаёт товары", regular, ActionCreate, KindProduct, false},
		{"админ создаёт товары", admin, ActionCreate, KindProduct, true},
		{"суперпользователь обновляет товары", superuser, ActionUpdate, KindProduct, true},
		{"пользователь не удаляет товары", regular, ActionDelete, KindProduct, false},

		{"админ не создаёт пользователей", admin, ActionCreate, KindUser, false},
		{"суперпользователь создаёт пользователей", superuser, ActionCreate, KindUser, true},
		{"админ не удаляет пользователей", admin, ActionDelete, KindUser, false},
		{"суперпользователь обновляет пользователей", superuser, ActionUpdate, KindUser, true},

		{"заказы не создаются напрямую даже суперпользователем", superuser, ActionCreate, KindOrder, false},
		{"админ обновляет статус заказа", admin, ActionUpdate, KindOrder, true},
		{"пользователь не обновляет заказ", regular, ActionUpdate, KindOrder, false},
		{"удаление заказа только суперпользователем", admin, ActionDelete, KindOrder, false},
		{"суперпользователь удаляет заказ", superuser, ActionDelete, KindOrder, true},

		{"владелец управляет корзиной", regular, ActionCreate, KindCart, true},
		{"владелец меняет корзину", regular, ActionUpdate, KindCart, true},

		{"владелец пополняет список желаний", regular, ActionCreate, KindWishlist, true},
		{"список желаний неизменяем", superuser, ActionUpdate, KindWishlist, false},
		{"владелец удаляет из списка желаний", regular, ActionDelete, KindWishlist, true},

		{"обращения не создаются аутентифицированно", superuser, ActionCreate, KindContact, false},
		{"админ обновляет флаги обращения", admin, ActionUpdate, KindContact, true},
		{"пользователь не трогает обращения", regular, ActionUpdate, KindContact, false},
		{"админ удаляет обращение", admin, ActionDelete, KindContact, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, tt.action, tt.kind))
		})
	}
}

func TestResolve_ReturnsPermittedSet(t *testing.T) {
	caps := Resolve(admin, KindProduct)
	assert.True(t, caps[ActionCreate])
	assert.True(t, caps[ActionUpdate])
	assert.True(t, caps[ActionDelete])

	caps = Resolve(regular, KindProduct)
	assert.Empty(t, caps)

	caps = Resolve(admin, KindUser)
	assert.Empty(t, caps)
}

func TestCanSeeAll(t *testing.T) {
	assert.False(t, CanSeeAll(regular))
	assert.True(t, CanSeeAll(admin))
	assert.True(t, CanSeeAll(superuser))
}
