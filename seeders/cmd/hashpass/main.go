// Печатает bcrypt-хеш пароля для ручной правки users.password.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"school-inventory/pkg/utils"
)

func main() {
	password := flag.String("password", "", "Пароль; если не задан, читается из stdin")
	flag.Parse()

	plain := *password
	if plain == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("Не удалось прочитать пароль: %v", err)
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if plain == "" {
		log.Fatal("Пустой пароль")
	}

	hashed, err := utils.HashPassword(plain)
	if err != nil {
		log.Fatalf("Ошибка при генерации хеша: %v", err)
	}

	fmt.Println(hashed)
}
