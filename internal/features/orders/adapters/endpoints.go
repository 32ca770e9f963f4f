package adapters

import "fmt"

const ordersPath = "/api/orders"

func orderPath(id int64) string {
	return fmt.Sprintf("%s/%d", ordersPath, id)
}

func orderActionPath(id int64, action string) string {
	return fmt.Sprintf("%s/%d/%s", ordersPath, id, action)
}
