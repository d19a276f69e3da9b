// Package access реализует единую таблицу полномочий: какие операции
// над какими сущностями разрешены данному актору.
//
// Все мутирующие обработчики и сервисы сверяются с этой таблицей вместо
// разрозненных проверок роли. Принадлежность строки актору (владение
// корзиной, заказом и т.п.) проверяется на уровне выборки в хранилище:
// чужие строки для непривилегированного актора неотличимы от несуществующих.
package access

import "github.com/magabrotheeeer/shop-backend/internal/models"

// Kind — вид сущности, к которой применяется операция.
type Kind string

// Виды сущностей.
const (
	KindProduct  Kind = "product"
	KindUser     Kind = "user"
	KindOrder    Kind = "order"
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
	KindContact  Kind = "contact"
)

// Action — операция над сущностью.
type Action string

// Операции.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// level — минимальный уровень привилегий, необходимый для операции.
type level int

const (
	levelNobody    level = iota // операция доступна только самой системе
	levelOwner                  // любой аутентифицированный актор над собственными строками
	levelStaff                  // админ или суперпользователь
	levelSuperuser              // только суперпользователь
)

// policy — таблица полномочий. Отсутствие записи означает levelNobody.
var policy = map[Kind]map[Action]level{
	KindProduct: {
		ActionCreate: levelStaff,
		ActionUpdate: levelStaff,
		ActionDelete: levelStaff,
	},
	KindUser: {
		ActionCreate: levelSuperuser,
		ActionUpdate: levelSuperuser,
		ActionDelete: levelSuperuser,
	},
	KindOrder: {
		// Заказы создаются только через оформление корзины.
		ActionUpdate: levelStaff,
		ActionDelete: levelSuperuser,
	},
	KindCart: {
		ActionCreate: levelOwner,
		ActionUpdate: levelOwner,
		ActionDelete: levelOwner,
	},
	KindWishlist: {
		ActionCreate: levelOwner,
		// Запись списка желаний неизменяема после создания.
		ActionDelete: levelOwner,
	},
	KindContact: {
		// Обращения создаются только входящим публичным запросом.
		ActionUpdate: levelStaff,
		ActionDelete: levelStaff,
	},
}

// Allowed сообщает, разрешена ли актору операция action над сущностью kind.
func Allowed(actor models.Actor, action Action, kind Kind) bool {
	required, ok := policy[kind][action]
	if !ok {
		return false
	}
	switch required {
	case levelOwner:
		return true
	case levelStaff:
		return actor.Role == "admin" || actor.IsSuperuser
	case levelSuperuser:
		return actor.IsSuperuser
	default:
		return false
	}
}

// Resolve возвращает набор операций, разрешённых актору над сущностью kind.
func Resolve(actor models.Actor, kind Kind) map[Action]bool {
	result := make(map[Action]bool, 3)
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		if Allowed(actor, action, kind) {
			result[action] = true
		}
	}
	return result
}

// CanSeeAll сообщает, видит ли актор чужие строки. Непривилегированный
// пользователь видит только собственные данные.
func CanSeeAll(actor models.Actor) bool {
	return actor.Role == "admin" || actor.IsSuperuser
}
