// Command hash-password prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
//	hash-password 'my secret'
//	echo -n 'my secret' | hash-password
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/iliyamo/meeting-room-booking/internal/config"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

func main() {
	_ = godotenv.Load()

	var plain string
	if len(os.Args) > 1 {
		plain = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read password: %v", err)
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if plain == "" {
		log.Fatal("empty password")
	}

	hash, err := utils.HashPassword(plain, config.BcryptCost())
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
