package main

import (
	"flag"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	plain := flag.String("p", "123456", "明文密码")
	flag.Parse()

	// 使用 bcrypt 加密密码，cost factor = 10
	hashed, err := bcrypt.GenerateFromPassword([]byte(*plain), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("加密失败: %v\n", err)
		return
	}

	fmt.Printf("明文密码: %s\n", *plain)
	fmt.Printf("加密后的密码: %s\n", string(hashed))
	fmt.Println("\n将加密后的密码复制到数据库中即可")
}
